package island

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestIsland(t *testing.T, width, height float64, params Params) *Polygon {
	t.Helper()
	p, err := Generate(width, height, params, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return p
}

func TestGenerateVertexLayout(t *testing.T) {
	p := newTestIsland(t, 1200, 800, DefaultParams())

	if len(p.Vertices) != 32 {
		t.Fatalf("Expected 32 vertices, got %d", len(p.Vertices))
	}

	for i, v := range p.Vertices {
		want := 2 * math.Pi * float64(i) / 32
		if math.Abs(v.Angle-want) > 1e-12 {
			t.Errorf("Vertex %d angle = %f, want %f", i, v.Angle, want)
		}
		got := math.Atan2(v.Y-p.CenterY, v.X-p.CenterX)
		if math.Abs(NormalizeAngle(got)-want) > 1e-9 {
			t.Errorf("Vertex %d does not lie on its ray: %f vs %f", i, got, want)
		}
		if math.Abs(math.Hypot(v.X-p.CenterX, v.Y-p.CenterY)-v.R) > 1e-9 {
			t.Errorf("Vertex %d stored R %f does not match its position", i, v.R)
		}
	}
}

func TestGenerateRejectsDegenerateInput(t *testing.T) {
	cases := []struct {
		name          string
		width, height float64
		params        Params
	}{
		{"too few vertices", 800, 600, Params{Vertices: 2, RadiusFraction: 0.8}},
		{"zero width", 0, 600, DefaultParams()},
		{"zero radius", 800, 600, Params{Vertices: 32}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.width, tc.height, tc.params, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrDegenerate) {
				t.Errorf("Expected ErrDegenerate, got %v", err)
			}
		})
	}
}

func TestMaxRadiusMatchesVertices(t *testing.T) {
	p := newTestIsland(t, 1000, 1000, DefaultParams())
	for i, v := range p.Vertices {
		got := p.MaxRadiusAtAngle(v.Angle)
		if math.Abs(got-v.R) > 1e-6 {
			t.Errorf("Vertex %d: MaxRadiusAtAngle = %f, want %f", i, got, v.R)
		}
	}
}

func TestMaxRadiusContinuousAndPositive(t *testing.T) {
	p := newTestIsland(t, 1400, 700, DefaultParams())
	sector := p.SectorAngle()

	for i := 0; i < len(p.Vertices); i++ {
		boundary := float64(i) * sector
		before := p.MaxRadiusAtAngle(boundary - 1e-9)
		after := p.MaxRadiusAtAngle(boundary + 1e-9)
		if math.Abs(before-after) > 1e-3 {
			t.Errorf("Discontinuity at sector %d: %f vs %f", i, before, after)
		}
	}

	for theta := -4 * math.Pi; theta < 4*math.Pi; theta += 0.001 {
		if r := p.MaxRadiusAtAngle(theta); r <= 0 {
			t.Fatalf("Expected positive radius at %f, got %f", theta, r)
		}
	}

	// Wraparound at exactly 2π and just below it
	if math.Abs(p.MaxRadiusAtAngle(2*math.Pi)-p.Vertices[0].R) > 1e-6 {
		t.Errorf("Expected 2π to map onto vertex 0")
	}
	if math.Abs(p.MaxRadiusAtAngle(2*math.Pi-1e-12)-p.Vertices[0].R) > 1e-3 {
		t.Errorf("Expected angle just below 2π to close onto vertex 0")
	}
}

func TestMaxRadiusExactOnEllipse(t *testing.T) {
	// With no noise the outline is an inscribed polygon of the ellipse; the
	// exact intersection at a sector midpoint must lie on the chord, which is
	// strictly inside the ellipse and never shorter than the shorter endpoint.
	p := newTestIsland(t, 1600, 400, Params{Vertices: 32, RadiusFraction: 0.9, Noise: 0})
	sector := p.SectorAngle()

	for i := range p.Vertices {
		mid := (float64(i) + 0.5) * sector
		r := p.MaxRadiusAtAngle(mid)
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		if r > p.ellipseRadius(mid)+1e-9 {
			t.Errorf("Sector %d: chord point %f outside ellipse %f", i, r, p.ellipseRadius(mid))
		}
		if r < math.Min(v1.R, v2.R)*math.Cos(sector/2)-1e-9 {
			t.Errorf("Sector %d: chord point %f too short", i, r)
		}

		// The intersection point must be collinear with the edge
		x := math.Cos(mid) * r
		y := math.Sin(mid) * r
		ex, ey := v2.X-v1.X, v2.Y-v1.Y
		px, py := x-(v1.X-p.CenterX), y-(v1.Y-p.CenterY)
		if cross := ex*py - ey*px; math.Abs(cross) > 1e-6*math.Hypot(ex, ey)*r {
			t.Errorf("Sector %d: intersection not on edge (cross %f)", i, cross)
		}
	}
}

func TestClampInside(t *testing.T) {
	p := newTestIsland(t, 1200, 900, DefaultParams())
	const buffer = 40.0
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		theta := rng.Float64() * 2 * math.Pi
		dist := p.MaxRadiusAtAngle(theta) + rng.Float64()*500
		x := p.CenterX + math.Cos(theta)*dist
		y := p.CenterY + math.Sin(theta)*dist

		cx, cy := p.ClampInside(x, y, buffer)
		got := math.Hypot(cx-p.CenterX, cy-p.CenterY)
		limit := p.MaxRadiusAtAngle(theta) - buffer
		if got > limit+1e-6 {
			t.Fatalf("Clamped point at distance %f exceeds limit %f", got, limit)
		}
		gotAngle := NormalizeAngle(math.Atan2(cy-p.CenterY, cx-p.CenterX))
		if math.Abs(gotAngle-NormalizeAngle(theta)) > 1e-6 && math.Abs(gotAngle-NormalizeAngle(theta)) < 2*math.Pi-1e-6 {
			t.Fatalf("Clamp changed the angle: %f vs %f", gotAngle, theta)
		}
	}

	// Points already inside are untouched
	x, y := p.ClampInside(p.CenterX+10, p.CenterY-5, buffer)
	if x != p.CenterX+10 || y != p.CenterY-5 {
		t.Errorf("Expected interior point unchanged, got (%f, %f)", x, y)
	}
}

func TestClampFallsBackToEllipse(t *testing.T) {
	p := &Polygon{CenterX: 100, CenterY: 100, RadiusX: 50, RadiusY: 50}
	x, y := p.ClampInside(400, 100, 10)
	if math.Abs(x-140) > 1e-9 || math.Abs(y-100) > 1e-9 {
		t.Errorf("Expected ellipse clamp to (140, 100), got (%f, %f)", x, y)
	}
}

func TestRandomPointInsideUniformArea(t *testing.T) {
	p := newTestIsland(t, 1000, 1000, Params{Vertices: 64, RadiusFraction: 0.8, Noise: 0})
	rng := rand.New(rand.NewSource(42))
	const (
		samples = 200000
		bins    = 10
		padding = 0.0
	)

	// Bin by normalized squared radius: equal-area rings for a uniform density
	counts := make([]int, bins)
	for i := 0; i < samples; i++ {
		x, y := p.RandomPointInside(rng, padding)
		dx, dy := x-p.CenterX, y-p.CenterY
		maxR := p.MaxRadiusAtAngle(math.Atan2(dy, dx))
		if maxR <= 0 {
			t.Fatalf("Unexpected non-positive radius")
		}
		f := (dx*dx + dy*dy) / (maxR * maxR)
		if f > 1+1e-9 {
			t.Fatalf("Sample outside island: fraction %f", f)
		}
		b := int(f * bins)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	expected := float64(samples) / bins
	for i, c := range counts {
		if math.Abs(float64(c)-expected) > expected*0.05 {
			t.Errorf("Ring %d: got %d samples, expected ~%.0f", i, c, expected)
		}
	}
}

func TestRandomPointInsideRespectsPadding(t *testing.T) {
	p := newTestIsland(t, 900, 700, DefaultParams())
	rng := rand.New(rand.NewSource(9))
	const padding = 60.0

	for i := 0; i < 5000; i++ {
		x, y := p.RandomPointInside(rng, padding)
		if !p.Contains(x, y, padding-1e-6) {
			t.Fatalf("Point (%f, %f) closer than %f to the shoreline", x, y, padding)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-2 * math.Pi, 0},
	}
	for _, tc := range cases {
		if got := NormalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
