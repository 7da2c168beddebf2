package fx

import (
	"image/color"
	"math"
)

// Floating text tuning
const (
	TextLife  = 1.0
	TextRise  = -50.0
	TextSize  = 20.0
	TextLarge = 30.0
)

// FloatingText is a rising, fading label such as a damage number
type FloatingText struct {
	Text  string
	X, Y  float64
	VY    float64
	Color color.RGBA
	Size  float64
	Life  float64

	MarkedForDeletion bool
}

// Alpha returns the draw opacity in [0, 1]
func (t *FloatingText) Alpha() float64 {
	return math.Max(0, math.Min(1, t.Life/TextLife))
}

func (t *FloatingText) update(deltaTime float64) {
	t.Y += t.VY * deltaTime
	t.Life -= deltaTime
	if t.Life <= 0 {
		t.MarkedForDeletion = true
	}
}
