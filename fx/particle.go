// Package fx holds the short-lived visual and economy effects: particles,
// the coin pickup flight and floating combat text.
package fx

import (
	"image/color"
	"math"
)

// Kind identifies the physics and shape a particle is created with
type Kind int

const (
	KindSpark Kind = iota
	KindSplinter
	KindBurst
	KindDust
	KindCoin
)

func (k Kind) String() string {
	switch k {
	case KindSpark:
		return "spark"
	case KindSplinter:
		return "splinter"
	case KindBurst:
		return "burst"
	case KindDust:
		return "dust"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// KindConfig holds the spawn and physics parameters for one particle kind
type KindConfig struct {
	// MinSpeed, MaxSpeed bound the initial speed in pixels per second
	MinSpeed, MaxSpeed float64

	// Lift is added to the initial vertical velocity (negative is up)
	Lift float64

	// Gravity is the downward acceleration in pixels per second squared
	Gravity float64

	// Friction multiplies both velocity components once per update
	Friction float64

	// Life is the lifetime in seconds. Coins ignore it.
	Life float64

	// MinSize, MaxSize bound the drawn radius
	MinSize, MaxSize float64

	// Spin is the maximum absolute angular velocity in radians per second
	Spin float64

	// Alpha overrides the spawn color's alpha when non-zero
	Alpha uint8
}

// GetKindConfig returns configuration for a particle kind
func GetKindConfig(kind Kind) KindConfig {
	switch kind {
	case KindSpark:
		return KindConfig{
			MinSpeed: 50,
			MaxSpeed: 150,
			Lift:     -100,
			Gravity:  600,
			Friction: 0.98,
			Life:     0.5,
			MinSize:  1.5,
			MaxSize:  3,
		}
	case KindSplinter:
		return KindConfig{
			MinSpeed: 100,
			MaxSpeed: 100,
			Friction: 0.96,
			Life:     1.0,
			MinSize:  2,
			MaxSize:  5,
			Spin:     10,
		}
	case KindBurst:
		return KindConfig{
			MinSpeed: 100,
			MaxSpeed: 300,
			Friction: 0.92,
			Life:     0.4,
			MinSize:  4,
			MaxSize:  8,
		}
	case KindDust:
		return KindConfig{
			MinSpeed: 5,
			MaxSpeed: 20,
			Lift:     -30,
			Friction: 0.95,
			Life:     0.5,
			MinSize:  3,
			MaxSize:  6,
			Alpha:    110,
		}
	case KindCoin:
		return KindConfig{
			MinSpeed: 60,
			MaxSpeed: 160,
			Gravity:  900,
			Friction: 1,
			MinSize:  4,
			MaxSize:  5,
		}
	default:
		return GetKindConfig(KindSpark)
	}
}

// CoinPhase is the step of the coin pickup flight
type CoinPhase int

const (
	CoinPop CoinPhase = iota
	CoinWait
	CoinFly
)

func (p CoinPhase) String() string {
	switch p {
	case CoinPop:
		return "pop"
	case CoinWait:
		return "wait"
	case CoinFly:
		return "fly"
	default:
		return "unknown"
	}
}

// Coin flight tuning
const (
	CoinPopDuration  = 0.8
	CoinWaitDuration = 0.25
	CoinFlySpeed     = 1200.0
	CoinArrival      = 20.0
	CoinPopImpulse   = 350.0
	CoinFloorOffset  = 20.0
	CoinBounce       = 0.5
)

// Particle is one live effect owned by an Engine
type Particle struct {
	X, Y   float64
	VX, VY float64

	Gravity  float64
	Friction float64

	// Life counts down from MaxLife; alpha is Life/MaxLife
	Life    float64
	MaxLife float64

	Size     float64
	Rotation float64
	Spin     float64

	Kind  Kind
	Color color.RGBA

	// Coin-only state
	Phase      CoinPhase
	PhaseTimer float64
	Value      float64
	floorY     float64

	MarkedForDeletion bool
}

// Alpha returns the draw opacity in [0, 1]
func (p *Particle) Alpha() float64 {
	if p.Kind == KindCoin || p.MaxLife <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, p.Life/p.MaxLife))
}

// update advances a non-coin particle
func (p *Particle) update(deltaTime float64) {
	p.X += p.VX * deltaTime
	p.Y += p.VY * deltaTime
	p.VY += p.Gravity * deltaTime
	p.VX *= p.Friction
	p.VY *= p.Friction
	p.Rotation += p.Spin * deltaTime

	p.Life -= deltaTime
	if p.Life <= 0 {
		p.Life = 0
		p.MarkedForDeletion = true
	}
}

// updateCoin advances the coin flight and reports true on the frame the coin
// reaches the target anchor
func (p *Particle) updateCoin(deltaTime, targetX, targetY float64) bool {
	switch p.Phase {
	case CoinPop:
		p.X += p.VX * deltaTime
		p.Y += p.VY * deltaTime
		p.VY += p.Gravity * deltaTime

		// Bounce off the floor once the coin is falling past it
		if p.VY > 0 && p.Y > p.floorY {
			p.Y = p.floorY
			p.VY = -p.VY * CoinBounce
			p.VX *= 0.8
		}

		p.PhaseTimer += deltaTime
		if p.PhaseTimer >= CoinPopDuration {
			p.Phase = CoinWait
			p.PhaseTimer = 0
			p.VX, p.VY = 0, 0
		}

	case CoinWait:
		p.PhaseTimer += deltaTime
		if p.PhaseTimer >= CoinWaitDuration {
			p.Phase = CoinFly
			p.PhaseTimer = 0
		}

	case CoinFly:
		p.VX, p.VY = 0, 0
		dx := targetX - p.X
		dy := targetY - p.Y
		dist := math.Hypot(dx, dy)
		step := CoinFlySpeed * deltaTime
		if dist < CoinArrival || dist <= step {
			p.X, p.Y = targetX, targetY
			p.MarkedForDeletion = true
			return true
		}
		p.X += dx / dist * step
		p.Y += dy / dist * step
		p.PhaseTimer += deltaTime
	}
	return false
}
