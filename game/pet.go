package game

import (
	"fmt"
	"image/color"
	"math"

	"islandbrawl/fx"
)

// PetKind defines the companion variants unlocked by Stats.PetLevel
type PetKind int

const (
	PetCarrot PetKind = iota
	PetParrot
)

// PetKindConfig holds configuration for each pet kind
type PetKindConfig struct {
	Kind      PetKind
	Name      string
	Sprite    SpriteKind
	Damage    float64
	Speed     float64
	Range     float64
	Cooldown  float64
	TextColor color.RGBA
	TextSize  float64
}

// GetPetKindConfig returns configuration for a pet kind
func GetPetKindConfig(kind PetKind) PetKindConfig {
	switch kind {
	case PetParrot:
		return PetKindConfig{
			Kind:      PetParrot,
			Name:      "parrot",
			Sprite:    SpriteParrot,
			Damage:    40,
			Speed:     200,
			Range:     250,
			Cooldown:  0.8,
			TextColor: colorSky,
			TextSize:  18,
		}
	default:
		return PetKindConfig{
			Kind:      PetCarrot,
			Name:      "carrot",
			Sprite:    SpriteCarrot,
			Damage:    25,
			Speed:     150,
			Range:     30,
			Cooldown:  1.0,
			TextColor: colorOrange,
			TextSize:  16,
		}
	}
}

// PetKindForLevel maps a pet upgrade level to its kind. Level 0 has no pet.
func PetKindForLevel(level int) (PetKind, bool) {
	switch {
	case level <= 0:
		return PetCarrot, false
	case level == 1:
		return PetCarrot, true
	default:
		return PetParrot, true
	}
}

// Pet tuning
const (
	PetFollowOffset = 50.0
	PetArriveRadius = 5.0
	PetLunge        = 0.2
)

// Pet is the companion that hunts the nearest damageable actor
type Pet struct {
	Kind PetKind
	X, Y float64

	Width, Height float64
	FacingX       float64

	// Target is re-acquired whenever it dies or is removed
	Target *Actor

	cooldown float64
	hopTimer float64
	config   PetKindConfig
}

// NewPet creates a pet of the given kind at (x, y)
func NewPet(kind PetKind, x, y float64) *Pet {
	return &Pet{
		Kind:    kind,
		X:       x,
		Y:       y,
		Width:   40,
		Height:  40,
		FacingX: 1,
		config:  GetPetKindConfig(kind),
	}
}

// Update hunts, attacks, or returns to the player
func (p *Pet) Update(ctx Context, actors []*Actor, deltaTime float64) {
	p.cooldown -= deltaTime

	if p.Target == nil || p.Target.MarkedForDeletion || p.Target.Health <= 0 {
		p.Target = p.nearestTarget(actors)
		if p.Target == nil {
			px, py := ctx.PlayerPosition()
			p.moveTo(px, py-PetFollowOffset, deltaTime)
			return
		}
	}

	dx := p.Target.X - p.X
	dy := p.Target.Y - p.Y
	if dx > 0 {
		p.FacingX = 1
	} else if dx < 0 {
		p.FacingX = -1
	}

	if math.Hypot(dx, dy) <= p.config.Range {
		if p.cooldown <= 0 {
			p.attack(ctx, p.Target)
			p.cooldown = p.config.Cooldown
		}
		return
	}

	p.moveTo(p.Target.X, p.Target.Y, deltaTime)
	if p.Kind == PetCarrot {
		p.hopTimer += deltaTime * 10
		p.Y += math.Sin(p.hopTimer) * 0.5
	}
}

// nearestTarget returns the closest live damageable actor, or nil
func (p *Pet) nearestTarget(actors []*Actor) *Actor {
	var nearest *Actor
	best := math.Inf(1)
	for _, a := range actors {
		if a.MarkedForDeletion || !a.Damageable() || a.Health <= 0 {
			continue
		}
		if d := a.DistanceTo(p.X, p.Y); d < best {
			best = d
			nearest = a
		}
	}
	return nearest
}

func (p *Pet) moveTo(tx, ty, deltaTime float64) {
	dx := tx - p.X
	dy := ty - p.Y
	dist := math.Hypot(dx, dy)
	if dist <= PetArriveRadius {
		return
	}
	step := math.Min(p.config.Speed*deltaTime, dist)
	p.X += dx / dist * step
	p.Y += dy / dist * step
}

func (p *Pet) attack(ctx Context, target *Actor) {
	cfg := p.config
	target.TakeDamage(ctx, cfg.Damage)

	effects := ctx.Effects()
	switch p.Kind {
	case PetCarrot:
		p.X += (target.X - p.X) * PetLunge
		p.Y += (target.Y - p.Y) * PetLunge
	case PetParrot:
		effects.SpawnParticles(target.X, target.Y, colorBlood, 3, fx.KindSpark)
	}
	effects.SpawnText(target.X, target.Y-20, fmt.Sprintf("%.0f", cfg.Damage), cfg.TextColor, cfg.TextSize)
}

// SortY implements Renderable
func (p *Pet) SortY() float64 {
	return p.Y
}

// Draw implements Renderable
func (p *Pet) Draw(s Surface, elapsed float64) {
	s.DrawShadow(p.X, p.Y+p.Height/2-5, 10, 5, 0.2)

	y := p.Y
	if p.Kind == PetParrot {
		y += math.Sin(elapsed*1000/200)*10 - 20
	}
	s.DrawSprite(Sprite{
		Kind:   p.config.Sprite,
		X:      p.X,
		Y:      y,
		Width:  p.Width,
		Height: p.Height,
		FlipX:  p.FacingX < 0,
		ScaleY: 1,
	})
}

// Upgrade turns the pet into a parrot with a burst of particles
func (p *Pet) Upgrade(ctx Context) {
	if p.Kind == PetParrot {
		return
	}
	p.Kind = PetParrot
	p.config = GetPetKindConfig(PetParrot)
	ctx.Effects().SpawnParticles(p.X, p.Y, colorPetGlow, 20, fx.KindBurst)
}
