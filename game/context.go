package game

import (
	"math/rand"

	"islandbrawl/fx"
	"islandbrawl/island"
)

// Context is the slice of the simulation an actor may touch while it
// updates. Game implements it; tests can supply their own.
type Context interface {
	Effects() *fx.Engine
	Rand() *rand.Rand
	Stats() Stats

	PlayerPosition() (float64, float64)
	Island() *island.Polygon
	Bounds() (width, height float64)

	// ActorsInRadius returns live actors whose center lies within radius
	ActorsInRadius(x, y, radius float64) []*Actor

	DrainEnergy(amount float64)
	HitStop(duration float64)
	Shake(amount float64)
	Credit(amount float64)
	Emit(event Event)
}
