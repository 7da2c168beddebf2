package term

import (
	"math"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"islandbrawl/game"
)

// keyHold is how long a key counts as held after its last press or repeat.
// Terminals only report presses, never releases.
const keyHold = 150 * time.Millisecond

// aimDistance places the keyboard aim point ahead of the player
const aimDistance = 100.0

// KeyInput turns terminal key presses into held movement. The aim follows
// the mouse when the terminal reports it, and the last movement direction
// otherwise.
type KeyInput struct {
	keys map[rune]time.Time
	now  func() time.Time

	// Last movement direction, used to aim without a mouse
	dirX, dirY float64

	mouse              bool
	mouseCol, mouseRow int
}

// NewKeyInput creates an input with nothing held
func NewKeyInput() *KeyInput {
	return &KeyInput{
		keys: make(map[rune]time.Time),
		now:  time.Now,
		dirX: 1,
	}
}

// HandleKey records a movement press. It reports whether the key was one.
func (k *KeyInput) HandleKey(ev *tcell.EventKey) bool {
	r := movementRune(ev)
	if r == 0 {
		return false
	}
	k.keys[r] = k.now()
	return true
}

// HandleMouse moves the aim point to the mouse cell
func (k *KeyInput) HandleMouse(ev *tcell.EventMouse) {
	k.mouseCol, k.mouseRow = ev.Position()
	k.mouse = true
}

// Release forgets every held key
func (k *KeyInput) Release() {
	clear(k.keys)
}

func movementRune(ev *tcell.EventKey) rune {
	switch ev.Key() {
	case tcell.KeyUp:
		return 'w'
	case tcell.KeyDown:
		return 's'
	case tcell.KeyLeft:
		return 'a'
	case tcell.KeyRight:
		return 'd'
	case tcell.KeyRune:
		switch r := unicode.ToLower(ev.Rune()); r {
		case 'w', 'a', 's', 'd':
			return r
		}
	}
	return 0
}

func (k *KeyInput) held(r rune, now time.Time) bool {
	last, ok := k.keys[r]
	return ok && now.Sub(last) < keyHold
}

func (k *KeyInput) Poll(view game.View) game.InputState {
	now := k.now()
	in := game.InputState{
		Up:    k.held('w', now),
		Down:  k.held('s', now),
		Left:  k.held('a', now),
		Right: k.held('d', now),
	}

	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if l := math.Hypot(dx, dy); l > 0 {
		k.dirX, k.dirY = dx/l, dy/l
	}

	if k.mouse {
		in.PointerX = (float64(k.mouseCol) + 0.5) * CellWidth
		in.PointerY = (float64(k.mouseRow) + 0.5) * CellHeight
	} else {
		in.PointerX = view.PlayerX + k.dirX*aimDistance
		in.PointerY = view.PlayerY + k.dirY*aimDistance
	}
	return in
}
