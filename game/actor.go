package game

import (
	"fmt"
	"math"

	"islandbrawl/fx"
)

// Hit reaction tuning
const (
	FlashDuration   = 0.1
	SquashScale     = 0.7
	SquashRecovery  = 5.0
	PatrolInterval  = 2.0
	ChasePatrolRate = 0.5
)

// Actor is any non-player entity on the island. Its behavior is selected by
// Kind through GetActorKindConfig.
type Actor struct {
	Kind ActorKind

	// Position in world coordinates
	X, Y float64

	Width, Height float64

	Health    float64
	MaxHealth float64

	// DirX, DirY is the unit patrol heading
	DirX, DirY float64

	// TargetX, TargetY is where a projectile lands
	TargetX, TargetY float64

	// ShadowScale grows from 0 to 1 as a projectile falls
	ShadowScale float64

	// Hit reaction, draw-time only
	FlashTimer float64
	ScaleY     float64

	// InvulnerableTimer blocks player swings while positive
	InvulnerableTimer float64

	MarkedForDeletion bool

	// Current cell coordinates (for fast lookup)
	CellX, CellY int

	changeDirTimer float64
	config         ActorKindConfig
}

// NewActor creates an actor of the given kind at (x, y)
func NewActor(kind ActorKind, x, y float64) *Actor {
	cfg := GetActorKindConfig(kind)
	return &Actor{
		Kind:      kind,
		X:         x,
		Y:         y,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Health:    cfg.MaxHealth,
		MaxHealth: cfg.MaxHealth,
		DirX:      1,
		ScaleY:    1,
		config:    cfg,
	}
}

// NewCannonBall creates a ball that falls onto (targetX, targetY)
func NewCannonBall(targetX, targetY float64) *Actor {
	a := NewActor(ActorCannonBall, targetX, targetY-CannonDropHeight)
	a.TargetX = targetX
	a.TargetY = targetY
	return a
}

// Config returns the kind configuration the actor was built with
func (a *Actor) Config() ActorKindConfig {
	return a.config
}

// Damageable reports whether the actor has a health pool
func (a *Actor) Damageable() bool {
	return a.MaxHealth > 0
}

// Mobile reports whether the actor moves on its own across the island
func (a *Actor) Mobile() bool {
	return a.config.Behavior == BehaviorPatrol || a.config.Behavior == BehaviorChase
}

// Invulnerable reports whether player swings are currently ignored
func (a *Actor) Invulnerable() bool {
	return a.InvulnerableTimer > 0
}

// DistanceTo calculates the distance to a point
func (a *Actor) DistanceTo(x, y float64) float64 {
	return math.Hypot(a.X-x, a.Y-y)
}

// SortY implements Renderable
func (a *Actor) SortY() float64 {
	return a.Y
}

// TakeDamage applies damage and hit feedback. It reports true only on the
// call that kills the actor; later calls on a dead actor do nothing, so
// death rewards are paid exactly once.
func (a *Actor) TakeDamage(ctx Context, amount float64) bool {
	return a.applyDamage(ctx, amount, true)
}

// Wear applies damage over time, such as thorns, through the same death path
// as TakeDamage but without hit feedback or hit-stop.
func (a *Actor) Wear(ctx Context, amount float64) bool {
	return a.applyDamage(ctx, amount, false)
}

func (a *Actor) applyDamage(ctx Context, amount float64, feedback bool) bool {
	if a.MarkedForDeletion || !a.Damageable() || amount <= 0 {
		return false
	}

	a.Health -= amount
	if feedback {
		a.hitFeedback(ctx, amount)
	}

	if a.Health > 0 {
		return false
	}

	a.Health = 0
	a.MarkedForDeletion = true
	a.die(ctx)
	return true
}

// hitFeedback flashes and squashes the actor and plays its kind's impact
func (a *Actor) hitFeedback(ctx Context, amount float64) {
	cfg := a.config
	a.FlashTimer = FlashDuration
	a.ScaleY = SquashScale

	if cfg.HitStop > 0 {
		ctx.HitStop(cfg.HitStop)
	}
	if cfg.Shake > 0 {
		ctx.Shake(cfg.Shake)
	}
	if cfg.HitCount > 0 {
		ctx.Effects().SpawnParticles(a.X, a.Y, cfg.HitColor, cfg.HitCount, cfg.HitParticles)
	}
	ctx.Emit(Event{Type: EventHit, X: a.X, Y: a.Y, Amount: amount, Kind: a.Kind})
}

// die pays out the death reward
func (a *Actor) die(ctx Context) {
	cfg := a.config
	effects := ctx.Effects()

	if cfg.DeathBursts > 0 {
		effects.SpawnParticles(a.X, a.Y, colorGold, cfg.DeathBursts, fx.KindBurst)
	}
	if cfg.DeathSplinter > 0 {
		effects.SpawnParticles(a.X, a.Y, cfg.HitColor, cfg.DeathSplinter, cfg.HitParticles)
	}

	if cfg.Reward > 0 {
		if cfg.RewardCoins > 0 {
			coins := effects.SpawnParticles(a.X, a.Y, colorGold, cfg.RewardCoins, fx.KindCoin)
			for _, c := range coins {
				c.Value = cfg.Reward / float64(cfg.RewardCoins)
			}
		} else {
			ctx.Credit(cfg.Reward)
		}
		effects.SpawnText(a.X, a.Y-30, fmt.Sprintf("+%.0fG", cfg.Reward), colorGold, fx.TextLarge)
	}

	ctx.Emit(Event{Type: EventActorKilled, X: a.X, Y: a.Y, Amount: cfg.Reward, Kind: a.Kind})
}

// Update advances the actor one frame
func (a *Actor) Update(ctx Context, deltaTime float64) {
	if a.MarkedForDeletion {
		return
	}

	if a.FlashTimer > 0 {
		a.FlashTimer = math.Max(0, a.FlashTimer-deltaTime)
	}
	if a.ScaleY < 1 {
		a.ScaleY = math.Min(1, a.ScaleY+deltaTime*SquashRecovery)
	}
	if a.InvulnerableTimer > 0 {
		a.InvulnerableTimer = math.Max(0, a.InvulnerableTimer-deltaTime)
	}

	switch a.config.Behavior {
	case BehaviorPatrol:
		updatePatrol(ctx, a, a.config.Speed, deltaTime)
		applyContact(ctx, a, deltaTime)
	case BehaviorChase:
		updateChase(ctx, a, deltaTime)
		applyContact(ctx, a, deltaTime)
	case BehaviorProjectile:
		updateFall(ctx, a, deltaTime)
	}
}

// Draw implements Renderable
func (a *Actor) Draw(s Surface, elapsed float64) {
	cfg := a.config
	switch cfg.Behavior {
	case BehaviorProjectile:
		s.DrawShadow(a.TargetX, a.TargetY, 20*a.ShadowScale, 10*a.ShadowScale, 0.3)
		s.DrawSprite(Sprite{Kind: cfg.Sprite, X: a.X, Y: a.Y, Width: a.Width, Height: a.Height, ScaleY: 1})
		return
	case BehaviorPatrol:
		s.DrawShadow(a.X, a.Y+a.Height/2-4, a.Width/2, 6, 0.2)
		s.DrawSprite(Sprite{
			Kind:     cfg.Sprite,
			X:        a.X,
			Y:        a.Y,
			Width:    a.Width,
			Height:   a.Height,
			Rotation: math.Atan2(a.DirY, a.DirX) - math.Pi/2,
			ScaleY:   a.ScaleY,
			Flash:    cfg.FlashColor,
			HasFlash: a.FlashTimer > 0,
		})
	case BehaviorChase:
		bob := math.Sin(elapsed*1000/150) * 3
		s.DrawShadow(a.X, a.Y+a.Height/2, a.Width/2, 8, 0.2)
		s.DrawSprite(Sprite{
			Kind:     cfg.Sprite,
			X:        a.X,
			Y:        a.Y - 10 + bob,
			Width:    a.Width,
			Height:   a.Height,
			FlipX:    a.DirX < 0,
			ScaleY:   a.ScaleY,
			Flash:    cfg.FlashColor,
			HasFlash: a.FlashTimer > 0,
		})
	default:
		s.DrawSprite(Sprite{
			Kind:     cfg.Sprite,
			X:        a.X,
			Y:        a.Y,
			Width:    a.Width,
			Height:   a.Height,
			ScaleY:   a.ScaleY,
			Flash:    cfg.FlashColor,
			HasFlash: a.FlashTimer > 0,
		})
	}

	if a.Damageable() && a.Health < a.MaxHealth {
		s.DrawHealthBar(a.X, a.Y-a.Height/2-8, a.Width, a.Health, a.MaxHealth)
	}
}
