package game

import (
	"fmt"
	"math"

	"islandbrawl/fx"
)

// Melee tuning
const (
	SwingDuration         = 0.2
	MinSwingCooldown      = 0.1
	BaseReach             = 50.0
	BaseArc               = math.Pi / 3
	InvulnerabilityWindow = 0.25
	RockCooldown          = 0.5
	RockEnergyCost        = 10.0
	RockShake             = 10.0
	KnockbackScale        = 0.1
	CritMultiplier        = 2.0
)

// Player is the controllable actor. Melee swings start automatically on a
// cadence and alternate direction each time.
type Player struct {
	X, Y          float64
	Width, Height float64

	// FacingX is 1 or -1 and follows horizontal movement
	FacingX float64

	// AimAngle is recomputed every frame from the pointer
	AimAngle float64

	Swinging       bool
	SwingTimer     float64
	SwingDirection float64

	rockCooldown float64
}

// NewPlayer creates a player at (x, y)
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:              x,
		Y:              y,
		Width:          64,
		Height:         64,
		FacingX:        1,
		SwingDirection: 1,
	}
}

// Reach returns the melee reach for the given stats
func Reach(stats Stats) float64 {
	return BaseReach + stats.Range
}

// Arc returns the full melee arc in radians for the given stats
func Arc(stats Stats) float64 {
	return BaseArc + stats.Arc*math.Pi/180
}

// Update moves the player, refreshes aim and advances the swing state machine
func (p *Player) Update(ctx Context, in InputState, deltaTime float64) {
	// Aim follows the pointer regardless of swing phase
	if ax, ay := in.PointerX-p.X, in.PointerY-p.Y; ax != 0 || ay != 0 {
		p.AimAngle = math.Atan2(ay, ax)
	}

	stats := ctx.Stats()
	dx, dy := in.movement()
	if dx > 0 {
		p.FacingX = 1
	} else if dx < 0 {
		p.FacingX = -1
	}
	p.X += dx * stats.Speed * deltaTime
	p.Y += dy * stats.Speed * deltaTime

	if p.rockCooldown > 0 {
		p.rockCooldown = math.Max(0, p.rockCooldown-deltaTime)
	}

	cooldown := math.Max(MinSwingCooldown, stats.SwingCooldown)
	p.SwingTimer += deltaTime

	if !p.Swinging {
		if p.SwingTimer >= cooldown {
			p.Swinging = true
			p.SwingTimer = 0
			p.SwingDirection = -p.SwingDirection
			ctx.Emit(Event{Type: EventSwing, X: p.X, Y: p.Y})
		}
		return
	}

	if p.SwingTimer >= SwingDuration {
		p.Swinging = false
		p.SwingTimer = 0
		return
	}
	p.resolveSwing(ctx)
}

// resolveSwing tests every nearby actor against the current hit cone
func (p *Player) resolveSwing(ctx Context) {
	stats := ctx.Stats()
	reach := Reach(stats)
	arc := Arc(stats)
	effects := ctx.Effects()

	for _, target := range ctx.ActorsInRadius(p.X, p.Y, reach) {
		if target.MarkedForDeletion || !InArc(p.X, p.Y, p.AimAngle, target.X, target.Y, reach, arc) {
			continue
		}

		switch {
		case target.Kind == ActorRock:
			if p.rockCooldown > 0 {
				continue
			}
			p.rockCooldown = RockCooldown
			ctx.DrainEnergy(RockEnergyCost)
			ctx.Shake(RockShake)
			effects.SpawnParticles(target.X, target.Y, colorWhite, 5, fx.KindSpark)
			effects.SpawnText(p.X, p.Y-40, fmt.Sprintf("-%.0f Energy", RockEnergyCost), colorRed, 16)
			ctx.Emit(Event{Type: EventRockBonk, X: target.X, Y: target.Y, Amount: RockEnergyCost, Kind: ActorRock})

		case target.Damageable() && !target.Invulnerable():
			damage := stats.Damage
			crit := stats.CritChance > 0 && ctx.Rand().Float64() < stats.CritChance
			textColor := colorWhite
			if crit {
				damage *= CritMultiplier
				textColor = colorGold
			}

			target.TakeDamage(ctx, damage)
			target.InvulnerableTimer = InvulnerabilityWindow
			label := fmt.Sprintf("%.0f", damage)
			if crit {
				label += "!"
			}
			effects.SpawnText(target.X, target.Y-20, label, textColor, fx.TextSize)

			if stats.Knockback > 0 && target.Mobile() && !target.MarkedForDeletion {
				p.knockback(ctx, target, stats.Knockback*KnockbackScale)
			}
		}
	}
}

// knockback pushes target away along the hit bearing and keeps it ashore
func (p *Player) knockback(ctx Context, target *Actor, distance float64) {
	dx := target.X - p.X
	dy := target.Y - p.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	target.X += dx / dist * distance
	target.Y += dy / dist * distance
	if poly := ctx.Island(); poly != nil {
		target.X, target.Y = poly.ClampInside(target.X, target.Y, 0)
	}
}

// InArc reports whether (tx, ty) lies inside the cone of the given reach and
// full arc width centered on aim, as seen from (px, py).
func InArc(px, py, aim, tx, ty, reach, arc float64) bool {
	dx := tx - px
	dy := ty - py
	if math.Hypot(dx, dy) >= reach {
		return false
	}
	return math.Abs(AngleDiff(math.Atan2(dy, dx), aim)) < arc/2
}

// AngleDiff returns a - b normalized into (-π, π]
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d <= -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// SortY implements Renderable
func (p *Player) SortY() float64 {
	return p.Y
}

// Draw renders the player, aim cone and blade. The blade sweep is cosmetic
// and only follows swing progress; the cone shows the real hit area.
func (p *Player) Draw(s Surface, stats Stats) {
	reach := Reach(stats)
	arc := Arc(stats)

	s.DrawShadow(p.X, p.Y, p.Width/2, 12, 0.2)
	s.DrawCone(p.X, p.Y, reach, p.AimAngle, arc)
	s.DrawSprite(Sprite{
		Kind:   SpritePlayer,
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
		FlipX:  p.FacingX < 0,
		ScaleY: 1,
	})

	angle, trail := p.BladeAngle(arc)
	s.DrawBlade(p.X, p.Y, angle, reach-20, trail)
}

// BladeAngle returns the drawn sword angle and swing trail opacity
func (p *Player) BladeAngle(arc float64) (float64, float64) {
	if !p.Swinging {
		return p.AimAngle + arc/2*p.SwingDirection, 0
	}
	progress := math.Min(1, p.SwingTimer/SwingDuration)
	start, end := -arc/2, arc/2
	if p.SwingDirection < 0 {
		start, end = end, start
	}
	return p.AimAngle + start + (end-start)*progress, math.Max(0, 0.8-progress)
}
