package term

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"islandbrawl/game"
)

const (
	FPS           = 30
	FrameDuration = time.Second / FPS
)

var (
	styleHUD    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleGold   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true)
	styleTitle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true)
	styleDim    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleCursor = tcell.StyleDefault.Background(tcell.NewRGBColor(80, 64, 0)).Foreground(tcell.ColorWhite)
)

// Frontend runs a game.Game inside a terminal
type Frontend struct {
	screen tcell.Screen
	canvas *Canvas
	game   *game.Game
	tree   *game.SkillTree
	input  *KeyInput
	logger *log.Logger

	// autopilot replaces the keyboard when set
	autopilot game.InputProvider

	shopCursor int
	shopMsg    string
	quit       bool
}

// NewFrontend sizes g to the terminal and takes over its input
func NewFrontend(screen tcell.Screen, g *game.Game, tree *game.SkillTree, autopilot game.InputProvider, logger *log.Logger) (*Frontend, error) {
	if logger == nil {
		logger = log.Default()
	}
	f := &Frontend{
		screen:    screen,
		canvas:    NewCanvas(screen),
		game:      g,
		tree:      tree,
		input:     NewKeyInput(),
		logger:    logger,
		autopilot: autopilot,
	}
	if autopilot != nil {
		g.SetInput(autopilot)
	} else {
		g.SetInput(f.input)
	}
	if err := f.resize(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Frontend) resize() error {
	w, h := WorldSize(f.screen.Size())
	if err := f.game.Resize(w, h); err != nil {
		return fmt.Errorf("failed to fit island to terminal: %w", err)
	}
	return nil
}

// Run drives the frame loop until ctx is done or the player quits
func (f *Frontend) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go f.pollEvents(ctx, events)

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	last := time.Now()
	for !f.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.HandleEvent(ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			f.Step(dt)
		}
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalized or ctx
// is done
func (f *Frontend) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one terminal event
func (f *Frontend) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
		if err := f.resize(); err != nil {
			f.logger.Printf("resize: %v", err)
		}
	case *tcell.EventMouse:
		f.input.HandleMouse(ev)
		if ev.Buttons()&tcell.Button1 != 0 && f.game.State() == game.StateMenu {
			f.game.StartRun()
		}
	case *tcell.EventKey:
		f.handleKey(ev)
	}
}

func (f *Frontend) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		f.quit = true
		return
	case tcell.KeyF1:
		game.GetDebugState().ToggleBoundary()
		return
	case tcell.KeyF2:
		game.GetDebugState().ToggleGrid()
		return
	}

	switch f.game.State() {
	case game.StateMenu:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			f.input.Release()
			f.game.StartRun()
		}
	case game.StatePlaying:
		f.input.HandleKey(ev)
	case game.StateShop:
		f.handleShopKey(ev)
	}
}

func (f *Frontend) handleShopKey(ev *tcell.EventKey) {
	nodes := f.tree.Nodes()
	switch {
	case ev.Key() == tcell.KeyUp || (ev.Key() == tcell.KeyRune && ev.Rune() == 'w'):
		f.shopCursor = (f.shopCursor + len(nodes) - 1) % len(nodes)
		f.shopMsg = ""
	case ev.Key() == tcell.KeyDown || (ev.Key() == tcell.KeyRune && ev.Rune() == 's'):
		f.shopCursor = (f.shopCursor + 1) % len(nodes)
		f.shopMsg = ""
	case ev.Key() == tcell.KeyEnter:
		f.shopMsg = ""
		if err := f.tree.Buy(f.game, nodes[f.shopCursor].ID); err != nil {
			f.shopMsg = err.Error()
			if errors.Is(err, game.ErrNotEnoughGold) {
				f.shopMsg = "not enough gold"
			}
		}
	case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		f.shopMsg = ""
		f.input.Release()
		f.game.StartRun()
	}
}

// Step advances the game and redraws the terminal
func (f *Frontend) Step(dt float64) {
	// The autopilot keeps sailing between runs
	if f.autopilot != nil && f.game.State() != game.StatePlaying {
		f.game.StartRun()
	}

	f.game.Tick(dt)
	f.Draw()
}

// Draw renders the current frame without advancing it
func (f *Frontend) Draw() {
	f.game.Draw(f.canvas)
	f.drawHUD()

	switch f.game.State() {
	case game.StateMenu:
		f.drawMenu()
	case game.StateShop:
		f.drawShop()
	}
	f.screen.Show()
}

func (f *Frontend) drawHUD() {
	cols, _ := f.screen.Size()
	f.canvas.DrawString(0, 0, strings.Repeat(" ", cols), styleHUD)
	f.canvas.DrawString(1, 0, fmt.Sprintf("$ %.0f", f.game.Gold()), styleGold)

	if f.game.State() != game.StatePlaying {
		return
	}
	const barWidth = 20
	filled := int(f.game.EnergyFraction()*barWidth + 0.5)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(" ", barWidth-filled) + "]"
	f.canvas.DrawString(12, 0, "energy "+bar, styleHUD)
}

func (f *Frontend) drawCentered(row int, s string, style tcell.Style) {
	cols, _ := f.screen.Size()
	f.canvas.DrawString((cols-len([]rune(s)))/2, row, s, style)
}

func (f *Frontend) drawMenu() {
	_, rows := f.screen.Size()
	mid := rows / 2
	f.drawCentered(mid-2, " ISLAND BRAWL ", styleTitle)
	f.drawCentered(mid, " WASD or arrows to move, mouse to aim ", styleHUD)
	f.drawCentered(mid+1, " SPACE to set sail, ESC to quit ", styleHUD)
}

func (f *Frontend) drawShop() {
	nodes := f.tree.Nodes()
	_, rows := f.screen.Size()
	top := max(1, rows/2-len(nodes)/2-2)

	f.drawCentered(top, " SHIPWRIGHT ", styleTitle)
	for i, node := range nodes {
		status := fmt.Sprintf("%5.0f", node.Cost)
		style := styleDim
		switch {
		case f.tree.Owned(node.ID):
			status = "owned"
		case f.tree.Available(node.ID):
			style = styleHUD
		default:
			status = "locked"
		}
		if i == f.shopCursor {
			style = styleCursor
		}
		f.drawCentered(top+2+i, fmt.Sprintf(" %-16s %-22s %6s ", node.Name, node.Description, status), style)
	}

	footer := top + 3 + len(nodes)
	if f.shopMsg != "" {
		f.drawCentered(footer, " "+f.shopMsg+" ", styleGold)
	}
	f.drawCentered(footer+1, " UP/DOWN select, ENTER buy, SPACE sail again ", styleHUD)
}

// Quit reports whether the player asked to leave
func (f *Frontend) Quit() bool {
	return f.quit
}
