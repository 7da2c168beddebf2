package render

import (
	"errors"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"islandbrawl/game"
)

// windowedSizeRatio sizes the window when leaving fullscreen
const windowedSizeRatio = 0.9

// App adapts a game.Game to ebiten.Game
type App struct {
	game     *game.Game
	screen   *Screen
	tree     *game.SkillTree
	profiler *game.Profiler
	logger   *log.Logger

	lastUpdate time.Time
	shopCursor int
	shopMsg    string
}

// AppOptions configures NewApp. Nil fields fall back to defaults.
type AppOptions struct {
	// Input overrides the keyboard and mouse, e.g. with a script autopilot
	Input game.InputProvider

	// Profiler captures CPU profiles on frame-rate drops when set
	Profiler *game.Profiler

	Tree   *game.SkillTree
	Logger *log.Logger
}

// NewApp wraps g for ebiten.RunGame
func NewApp(g *game.Game, sprites *SpriteSet, opts AppOptions) *App {
	if opts.Input == nil {
		opts.Input = KeyboardInput{}
	}
	if opts.Tree == nil {
		opts.Tree = game.NewSkillTree(game.DefaultSkillNodes())
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	g.SetInput(opts.Input)

	return &App{
		game:       g,
		screen:     NewScreen(sprites),
		tree:       opts.Tree,
		profiler:   opts.Profiler,
		logger:     opts.Logger,
		lastUpdate: time.Now(),
	}
}

// Update implements ebiten.Game
func (a *App) Update() error {
	now := time.Now()
	dt := now.Sub(a.lastUpdate).Seconds()
	a.lastUpdate = now
	if dt > 0.1 {
		dt = 0.1
	}

	if a.profiler != nil {
		a.profiler.ObserveFrame(dt)
	}

	a.handleGlobalKeys()

	switch a.game.State() {
	case game.StateMenu:
		if startPressed() {
			a.game.StartRun()
		}
	case game.StateShop:
		a.handleShop()
	}

	a.game.Tick(dt)
	return nil
}

func (a *App) handleGlobalKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		game.GetDebugState().ToggleBoundary()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		game.GetDebugState().ToggleGrid()
	}

	// Alt+Enter toggles fullscreen
	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	if altPressed && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		fullscreen := ebiten.IsFullscreen()
		ebiten.SetFullscreen(!fullscreen)
		if fullscreen {
			w, h := ebiten.ScreenSizeInFullscreen()
			ebiten.SetWindowSize(int(float64(w)*windowedSizeRatio), int(float64(h)*windowedSizeRatio))
		}
	}
}

func (a *App) handleShop() {
	nodes := a.tree.Nodes()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		a.shopCursor = (a.shopCursor + len(nodes) - 1) % len(nodes)
		a.shopMsg = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.shopCursor = (a.shopCursor + 1) % len(nodes)
		a.shopMsg = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !ebiten.IsKeyPressed(ebiten.KeyAlt):
		a.shopMsg = ""
		if err := a.tree.Buy(a.game, nodes[a.shopCursor].ID); err != nil {
			a.shopMsg = shopMessage(err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.shopMsg = ""
		a.game.StartRun()
	}
}

// shopMessage turns a purchase error into a player-facing line
func shopMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrNotEnoughGold):
		return "Not enough gold"
	case errors.Is(err, game.ErrSkillLocked):
		return "Requires the previous upgrade"
	case errors.Is(err, game.ErrSkillOwned):
		return "Already owned"
	default:
		return err.Error()
	}
}

func startPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.screen.Begin(screen)
	a.game.Draw(a.screen)

	fps := ebiten.ActualFPS()
	if a.profiler != nil {
		fps = a.profiler.FPS()
	}
	a.screen.drawHUD(a.game, fps)

	switch a.game.State() {
	case game.StateMenu:
		a.screen.drawMenu(a.game)
	case game.StateShop:
		a.screen.drawShop(a.game, a.tree, a.shopCursor, a.shopMsg)
	}
}

// Layout implements ebiten.Game. A new window size regenerates the island.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		w, h := a.game.Bounds()
		return int(w), int(h)
	}
	if err := a.game.Resize(outsideWidth, outsideHeight); err != nil {
		a.logger.Printf("resize: %v", err)
		w, h := a.game.Bounds()
		return int(w), int(h)
	}
	return outsideWidth, outsideHeight
}
