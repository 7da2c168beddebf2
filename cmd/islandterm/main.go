package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"islandbrawl/audio"
	"islandbrawl/game"
	"islandbrawl/term"
)

func main() {
	seed := flag.Int64("seed", game.EnvInt64("ISLANDBRAWL_SEED", 0), "simulation seed, 0 picks one from the clock (or set ISLANDBRAWL_SEED)")
	bot := flag.Bool("bot", false, "let the built-in autopilot play")
	script := flag.String("script", "", "JavaScript autopilot file defining decide(ctx)")
	sound := flag.Bool("audio", os.Getenv("ISLANDBRAWL_AUDIO") == "1", "play sound effects (or set ISLANDBRAWL_AUDIO=1)")
	logPath := flag.String("log", "", "write diagnostics to this file; the terminal is busy drawing")
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere
	logOut := io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "[islandterm] ", log.LstdFlags)

	config := game.DefaultConfig()
	config.Logger = logger
	config.Seed = *seed
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	g, err := game.NewGame(config)
	if err != nil {
		log.Fatal(err)
	}

	autopilot, err := game.LoadAutopilot(*bot, *script, logger)
	if err != nil {
		log.Fatal(err)
	}

	if *sound {
		sm := audio.NewSoundManager(0.6)
		if err := sm.Initialize(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			sm.Attach(g.Events())
			defer sm.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	frontend, err := term.NewFrontend(screen, g, game.NewSkillTree(game.DefaultSkillNodes()), autopilot, logger)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = frontend.Run(ctx)
	stop()
	screen.Fini()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
