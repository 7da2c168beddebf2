package game

import (
	"image/color"

	"islandbrawl/fx"
	"islandbrawl/island"
)

// SpriteKind selects the artwork a front-end draws for a renderable
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteChest
	SpriteRock
	SpriteCrab
	SpritePirate
	SpriteCannonBall
	SpriteCarrot
	SpriteParrot
	SpriteCount
)

func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpriteChest:
		return "chest"
	case SpriteRock:
		return "rock"
	case SpriteCrab:
		return "crab"
	case SpritePirate:
		return "pirate"
	case SpriteCannonBall:
		return "cannonball"
	case SpriteCarrot:
		return "carrot"
	case SpriteParrot:
		return "parrot"
	default:
		return "unknown"
	}
}

// Sprite is everything a front-end needs to place one piece of artwork
type Sprite struct {
	Kind SpriteKind

	// X, Y is the center of the footprint
	X, Y          float64
	Width, Height float64
	Rotation      float64
	FlipX         bool

	// ScaleY squashes the sprite vertically around its base
	ScaleY float64

	// Flash tints the whole sprite when HasFlash is set
	Flash    color.RGBA
	HasFlash bool
}

// Surface is the rendering collaborator. The simulation decides what is drawn
// and in which order; a Surface decides how.
type Surface interface {
	// SetOffset shifts everything drawn afterwards, used for screen shake
	SetOffset(dx, dy float64)

	DrawIsland(p *island.Polygon)
	DrawShadow(x, y, radiusX, radiusY, alpha float64)
	DrawSprite(s Sprite)
	DrawHealthBar(x, y, width, health, maxHealth float64)

	// DrawCone fills the melee hit cone centered on angle
	DrawCone(x, y, radius, angle, arc float64)

	// DrawBlade draws the sword at angle, fading the swing trail by alpha
	DrawBlade(x, y, angle, length, trailAlpha float64)

	DrawParticle(p *fx.Particle)
	DrawText(t *fx.FloatingText)

	DrawDebugLine(x1, y1, x2, y2 float64, clr color.RGBA)
}

// Renderable is anything placed in the Y-sorted draw pass
type Renderable interface {
	SortY() float64
	Draw(s Surface, elapsed float64)
}
