package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"islandbrawl/audio"
	"islandbrawl/game"
	"islandbrawl/render"
)

func main() {
	seed := flag.Int64("seed", game.EnvInt64("ISLANDBRAWL_SEED", 0), "simulation seed, 0 picks one from the clock (or set ISLANDBRAWL_SEED)")
	bot := flag.Bool("bot", false, "let the built-in autopilot play")
	script := flag.String("script", "", "JavaScript autopilot file defining decide(ctx)")
	sound := flag.Bool("audio", os.Getenv("ISLANDBRAWL_AUDIO") != "0", "play sound effects (or set ISLANDBRAWL_AUDIO=0)")
	volume := flag.Float64("volume", 0.6, "sound effect volume in [0, 1]")
	profileDir := flag.String("profile", os.Getenv("ISLANDBRAWL_PROFILE"), "capture CPU profiles here on frame drops (or set ISLANDBRAWL_PROFILE)")
	verbose := flag.Bool("v", false, "log every run-level event")
	flag.Parse()

	config := game.DefaultConfig()
	config.Verbose = *verbose
	if *seed != 0 {
		config.Seed = *seed
	} else {
		config.Seed = time.Now().UnixNano()
	}
	logger := config.Logger

	g, err := game.NewGame(config)
	if err != nil {
		log.Fatal(err)
	}

	opts := render.AppOptions{Logger: logger}

	autopilot, err := game.LoadAutopilot(*bot, *script, logger)
	if err != nil {
		log.Fatal(err)
	}
	if autopilot != nil {
		opts.Input = autopilot
	}

	if *profileDir != "" {
		opts.Profiler = game.NewProfiler(*profileDir, logger)
	}

	if *sound {
		sm := audio.NewSoundManager(*volume)
		if err := sm.Initialize(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			sm.Attach(g.Events())
			defer sm.Cleanup()
		}
	}

	sprites, err := render.LoadSprites(logger)
	if err != nil {
		logger.Printf("using placeholder sprites: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Island Brawl")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(render.NewApp(g, sprites, opts)); err != nil {
		log.Fatal(err)
	}
}
