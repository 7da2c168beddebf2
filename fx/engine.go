package fx

import (
	"image/color"
	"math"
	"math/rand"
)

// CurrencySink receives coin value when a coin reaches its anchor
type CurrencySink interface {
	Credit(amount float64)
}

// Engine owns every live particle and floating text
type Engine struct {
	Particles []*Particle
	Texts     []*FloatingText

	rng  *rand.Rand
	sink CurrencySink

	// Coins fly to this point, normally the HUD currency readout
	anchorX, anchorY float64
}

// NewEngine creates an effect engine crediting coins to sink
func NewEngine(rng *rand.Rand, sink CurrencySink) *Engine {
	return &Engine{
		Particles: make([]*Particle, 0, 512),
		Texts:     make([]*FloatingText, 0, 64),
		rng:       rng,
		sink:      sink,
	}
}

// SetCoinAnchor moves the point coins fly towards
func (e *Engine) SetCoinAnchor(x, y float64) {
	e.anchorX = x
	e.anchorY = y
}

// CoinAnchor returns the point coins fly towards
func (e *Engine) CoinAnchor() (float64, float64) {
	return e.anchorX, e.anchorY
}

// SpawnParticles inserts count particles of the given kind at (x, y) and
// returns them so the caller can configure them before the next update.
func (e *Engine) SpawnParticles(x, y float64, clr color.RGBA, count int, kind Kind) []*Particle {
	if count <= 0 {
		return nil
	}

	cfg := GetKindConfig(kind)
	spawned := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		p := &Particle{
			X:        x,
			Y:        y,
			Gravity:  cfg.Gravity,
			Friction: cfg.Friction,
			Life:     cfg.Life,
			MaxLife:  cfg.Life,
			Size:     cfg.MinSize + e.rng.Float64()*(cfg.MaxSize-cfg.MinSize),
			Kind:     kind,
			Color:    clr,
		}
		if cfg.Alpha != 0 {
			p.Color.A = cfg.Alpha
		}
		if cfg.Spin > 0 {
			p.Spin = (e.rng.Float64()*2 - 1) * cfg.Spin
			p.Rotation = e.rng.Float64() * 2 * math.Pi
		}

		switch kind {
		case KindCoin:
			p.VX = (e.rng.Float64()*2 - 1) * cfg.MaxSpeed
			p.VY = -CoinPopImpulse * (0.8 + e.rng.Float64()*0.4)
			p.Phase = CoinPop
			p.floorY = y + CoinFloorOffset
		case KindDust:
			p.VX = (e.rng.Float64()*2 - 1) * cfg.MaxSpeed
			p.VY = cfg.Lift - e.rng.Float64()*cfg.MinSpeed
		default:
			angle := e.rng.Float64() * 2 * math.Pi
			speed := cfg.MinSpeed + e.rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
			p.VX = math.Cos(angle) * speed
			p.VY = math.Sin(angle)*speed + cfg.Lift
		}

		e.Particles = append(e.Particles, p)
		spawned = append(spawned, p)
	}
	return spawned
}

// SpawnText adds a floating label at (x, y)
func (e *Engine) SpawnText(x, y float64, text string, clr color.RGBA, size float64) *FloatingText {
	if size <= 0 {
		size = TextSize
	}
	t := &FloatingText{
		Text:  text,
		X:     x,
		Y:     y,
		VY:    TextRise,
		Color: clr,
		Size:  size,
		Life:  TextLife,
	}
	e.Texts = append(e.Texts, t)
	return t
}

// UpdateParticles advances every particle. Coins that arrive credit their
// value to the sink exactly once.
func (e *Engine) UpdateParticles(deltaTime float64) {
	for _, p := range e.Particles {
		if p.MarkedForDeletion {
			continue
		}
		if p.Kind != KindCoin {
			p.update(deltaTime)
			continue
		}
		if p.updateCoin(deltaTime, e.anchorX, e.anchorY) && e.sink != nil {
			e.sink.Credit(p.Value)
		}
	}
}

// UpdateTexts advances every floating text
func (e *Engine) UpdateTexts(deltaTime float64) {
	for _, t := range e.Texts {
		if !t.MarkedForDeletion {
			t.update(deltaTime)
		}
	}
}

// Compact drops particles and texts marked for deletion, keeping draw order
func (e *Engine) Compact() {
	live := e.Particles[:0]
	for _, p := range e.Particles {
		if !p.MarkedForDeletion {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(e.Particles); i++ {
		e.Particles[i] = nil
	}
	e.Particles = live

	texts := e.Texts[:0]
	for _, t := range e.Texts {
		if !t.MarkedForDeletion {
			texts = append(texts, t)
		}
	}
	for i := len(texts); i < len(e.Texts); i++ {
		e.Texts[i] = nil
	}
	e.Texts = texts
}

// Reset drops every effect
func (e *Engine) Reset() {
	clear(e.Particles)
	clear(e.Texts)
	e.Particles = e.Particles[:0]
	e.Texts = e.Texts[:0]
}

// CoinsInFlight counts coins that have not yet been credited
func (e *Engine) CoinsInFlight() int {
	n := 0
	for _, p := range e.Particles {
		if p.Kind == KindCoin && !p.MarkedForDeletion {
			n++
		}
	}
	return n
}
