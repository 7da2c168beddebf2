// Package island builds the closed, noise-perturbed polygon that bounds the
// play area and answers containment queries against it.
package island

import (
	"errors"
	"math"
	"math/rand"
)

// ErrDegenerate is returned when the requested polygon cannot enclose any area.
var ErrDegenerate = errors.New("island: degenerate polygon")

// parallelEpsilon is the smallest |n·d| treated as a real intersection.
const parallelEpsilon = 1e-9

// Vertex is one corner of the island outline
type Vertex struct {
	// X, Y is the Cartesian position in world coordinates
	X, Y float64

	// R is the true Euclidean distance from the polygon center
	R float64

	// Angle is the angular position around the center in radians, in [0, 2π)
	Angle float64
}

// Params controls island generation
type Params struct {
	// Vertices is the number of outline vertices (sector count)
	Vertices int

	// RadiusFraction scales the base ellipse against half the play-area size
	RadiusFraction float64

	// Noise is the maximum absolute radial offset before smoothing
	Noise float64
}

// DefaultParams returns the parameters used by the game
func DefaultParams() Params {
	return Params{
		Vertices:       32,
		RadiusFraction: 0.85,
		Noise:          60,
	}
}

// Polygon is the closed island outline. Vertex i sits at angle 2πi/N.
// A Polygon is never mutated after Generate; resizing builds a new one.
type Polygon struct {
	CenterX, CenterY float64

	// RadiusX, RadiusY are the base ellipse radii used for generation and as
	// the closed-form fallback when the vertex list is unusable
	RadiusX, RadiusY float64

	Vertices []Vertex

	sector float64
}

// Generate builds an island centered in a width×height play area
func Generate(width, height float64, params Params, rng *rand.Rand) (*Polygon, error) {
	n := params.Vertices
	if n < 3 || width <= 0 || height <= 0 || params.RadiusFraction <= 0 {
		return nil, ErrDegenerate
	}

	p := &Polygon{
		CenterX: width / 2,
		CenterY: height / 2,
		RadiusX: width / 2 * params.RadiusFraction,
		RadiusY: height / 2 * params.RadiusFraction,
		sector:  2 * math.Pi / float64(n),
	}

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = (rng.Float64()*2 - 1) * params.Noise
	}

	// 3-tap circular box blur keeps the shoreline from going jagged
	smooth := make([]float64, n)
	for i := range smooth {
		prev := raw[(i-1+n)%n]
		next := raw[(i+1)%n]
		smooth[i] = (prev + raw[i] + next) / 3
	}

	p.Vertices = make([]Vertex, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * p.sector
		r := p.ellipseRadius(angle) + smooth[i]
		if r < 1 {
			r = 1
		}
		x := p.CenterX + math.Cos(angle)*r
		y := p.CenterY + math.Sin(angle)*r
		p.Vertices[i] = Vertex{
			X:     x,
			Y:     y,
			R:     math.Hypot(x-p.CenterX, y-p.CenterY),
			Angle: angle,
		}
	}

	return p, nil
}

// NormalizeAngle maps any angle into [0, 2π)
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	if theta >= 2*math.Pi {
		theta = 0
	}
	return theta
}

// ellipseRadius is the distance from center to the base ellipse at theta
func (p *Polygon) ellipseRadius(theta float64) float64 {
	if p.RadiusX <= 0 || p.RadiusY <= 0 {
		return math.Max(p.RadiusX, p.RadiusY)
	}
	c := math.Cos(theta) * p.RadiusY
	s := math.Sin(theta) * p.RadiusX
	return p.RadiusX * p.RadiusY / math.Sqrt(c*c+s*s)
}

// usable reports whether the vertex list can answer sector queries
func (p *Polygon) usable() bool {
	return p != nil && len(p.Vertices) >= 3 && p.sector > 0
}

// MaxRadiusAtAngle returns the distance from the center to the shoreline
// along the ray at angle theta. The ray is intersected exactly with the edge
// of the sector it falls in, so elongated islands are handled correctly.
func (p *Polygon) MaxRadiusAtAngle(theta float64) float64 {
	if !p.usable() {
		if p == nil {
			return 0
		}
		return p.ellipseRadius(theta)
	}

	theta = NormalizeAngle(theta)
	n := len(p.Vertices)
	index := int(theta/p.sector) % n

	v1 := p.Vertices[index]
	v2 := p.Vertices[(index+1)%n]

	// Edge relative to center, its normal, and the ray direction
	x1, y1 := v1.X-p.CenterX, v1.Y-p.CenterY
	x2, y2 := v2.X-p.CenterX, v2.Y-p.CenterY
	nx, ny := -(y2 - y1), x2-x1
	dx, dy := math.Cos(theta), math.Sin(theta)

	denom := nx*dx + ny*dy
	if math.Abs(denom) < parallelEpsilon {
		return v1.R
	}

	r := (nx*x1 + ny*y1) / denom
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return v1.R
	}
	return r
}

// ClampInside pulls (x, y) back onto the limit circle at its own angle when
// it lies further than MaxRadiusAtAngle - buffer from the center.
func (p *Polygon) ClampInside(x, y, buffer float64) (float64, float64) {
	if p == nil {
		return x, y
	}

	dx := x - p.CenterX
	dy := y - p.CenterY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return x, y
	}

	theta := math.Atan2(dy, dx)
	limit := p.MaxRadiusAtAngle(theta) - buffer
	if limit < 0 {
		limit = 0
	}
	if dist <= limit {
		return x, y
	}

	return p.CenterX + math.Cos(theta)*limit, p.CenterY + math.Sin(theta)*limit
}

// Contains reports whether (x, y) lies within the shoreline minus buffer
func (p *Polygon) Contains(x, y, buffer float64) bool {
	if p == nil {
		return false
	}
	dx := x - p.CenterX
	dy := y - p.CenterY
	return math.Hypot(dx, dy) <= p.MaxRadiusAtAngle(math.Atan2(dy, dx))-buffer
}

// RandomPointInside picks a point with uniform areal density inside the
// island, at least padding away from the shoreline along its ray.
func (p *Polygon) RandomPointInside(rng *rand.Rand, padding float64) (float64, float64) {
	if p == nil {
		return 0, 0
	}

	theta := rng.Float64() * 2 * math.Pi
	maxR := p.MaxRadiusAtAngle(theta) - padding
	if maxR < 0 {
		maxR = 0
	}

	// sqrt keeps density uniform over area instead of over radius
	dist := math.Sqrt(rng.Float64()) * maxR
	return p.CenterX + math.Cos(theta)*dist, p.CenterY + math.Sin(theta)*dist
}

// SectorAngle is the angular width of one edge
func (p *Polygon) SectorAngle() float64 {
	return p.sector
}
