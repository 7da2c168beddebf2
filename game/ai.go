package game

import (
	"fmt"
	"math"

	"islandbrawl/fx"
)

// randomHeading sets a fresh unit heading
func randomHeading(ctx Context, a *Actor) {
	angle := ctx.Rand().Float64() * 2 * math.Pi
	a.DirX = math.Cos(angle)
	a.DirY = math.Sin(angle)
}

// updatePatrol wanders on a heading re-rolled every PatrolInterval and
// bounces off the play-area edges and, roughly, the shoreline.
func updatePatrol(ctx Context, a *Actor, speed, deltaTime float64) {
	a.changeDirTimer += deltaTime
	if a.changeDirTimer >= PatrolInterval {
		a.changeDirTimer = 0
		randomHeading(ctx, a)
	}

	nextX := a.X + a.DirX*speed*deltaTime
	nextY := a.Y + a.DirY*speed*deltaTime

	width, height := ctx.Bounds()
	if nextX < 0 || nextX > width {
		a.DirX = -a.DirX
	}
	if nextY < 0 || nextY > height {
		a.DirY = -a.DirY
	}

	// Turn back towards the center instead of grinding along the shore
	if poly := ctx.Island(); poly != nil && !poly.Contains(nextX, nextY, 0) {
		if (nextX-poly.CenterX)*a.DirX > 0 {
			a.DirX = -a.DirX
		}
		if (nextY-poly.CenterY)*a.DirY > 0 {
			a.DirY = -a.DirY
		}
	}

	a.X += a.DirX * speed * deltaTime
	a.Y += a.DirY * speed * deltaTime
}

// updateChase runs straight at the player inside the aggro radius and
// patrols at reduced speed otherwise.
func updateChase(ctx Context, a *Actor, deltaTime float64) {
	cfg := a.config
	px, py := ctx.PlayerPosition()
	dx := px - a.X
	dy := py - a.Y
	dist := math.Hypot(dx, dy)

	if dist < cfg.AggroRadius {
		// Already on top of the player
		if dist == 0 {
			return
		}
		a.DirX = dx / dist
		a.DirY = dy / dist
		step := math.Min(cfg.Speed*deltaTime, dist)
		a.X += a.DirX * step
		a.Y += a.DirY * step
		return
	}

	updatePatrol(ctx, a, cfg.Speed*ChasePatrolRate, deltaTime)
}

// applyContact drains energy while the player stands close and applies
// thorns damage back to the attacker.
func applyContact(ctx Context, a *Actor, deltaTime float64) {
	cfg := a.config
	if cfg.ContactRadius <= 0 {
		return
	}

	px, py := ctx.PlayerPosition()
	if a.DistanceTo(px, py) >= cfg.ContactRadius {
		return
	}

	ctx.DrainEnergy(cfg.ContactDrain * deltaTime)

	if thorns := ctx.Stats().Thorns; thorns > 0 {
		a.Wear(ctx, thorns*deltaTime*10)
	}
}

// updateFall drops a projectile onto its target and detonates on arrival
func updateFall(ctx Context, a *Actor, deltaTime float64) {
	a.Y += a.config.Speed * deltaTime

	height := a.TargetY - a.Y
	a.ShadowScale = math.Max(0, math.Min(1, 1-height/CannonDropHeight))

	if a.Y >= a.TargetY {
		a.Y = a.TargetY
		explode(ctx, a)
	}
}

// explode damages every damageable actor near the landing point
func explode(ctx Context, a *Actor) {
	a.MarkedForDeletion = true
	ctx.Shake(CannonShake)

	effects := ctx.Effects()
	effects.SpawnParticles(a.TargetX, a.TargetY, colorFire, 15, fx.KindBurst)
	effects.SpawnParticles(a.TargetX, a.TargetY, colorSmoke, 10, fx.KindDust)

	for _, target := range ctx.ActorsInRadius(a.TargetX, a.TargetY, CannonRadius) {
		if target == a || target.MarkedForDeletion || !target.Damageable() {
			continue
		}
		target.TakeDamage(ctx, CannonDamage)
		effects.SpawnText(target.X, target.Y-30, fmt.Sprintf("%.0f", CannonDamage), colorFire, 25)
	}

	ctx.Emit(Event{Type: EventExplosion, X: a.TargetX, Y: a.TargetY, Amount: CannonDamage, Kind: a.Kind})
}
