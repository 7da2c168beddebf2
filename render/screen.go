package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"islandbrawl/fx"
	"islandbrawl/game"
	"islandbrawl/island"
)

// Palette
var (
	colorSea        = color.RGBA{46, 139, 187, 255}
	colorSand       = color.RGBA{224, 205, 167, 255}
	colorWetSand    = color.RGBA{196, 174, 130, 255}
	colorFoam       = color.RGBA{255, 255, 255, 170}
	colorShadow     = color.RGBA{0, 0, 0, 255}
	colorCone       = color.RGBA{255, 255, 255, 38}
	colorConeEdge   = color.RGBA{255, 255, 255, 102}
	colorBlade      = color.RGBA{192, 192, 192, 255}
	colorHilt       = color.RGBA{101, 67, 33, 255}
	colorGuard      = color.RGBA{255, 215, 0, 255}
	colorBarBack    = color.RGBA{51, 51, 51, 255}
	colorBarHigh    = color.RGBA{0, 255, 0, 255}
	colorBarMid     = color.RGBA{255, 255, 0, 255}
	colorBarLow     = color.RGBA{255, 0, 0, 255}
	colorTextShadow = color.RGBA{0, 0, 0, 255}
)

// baseFontSize is the pixel height of the bitmap face before scaling
const baseFontSize = 13.0

// Screen draws the simulation onto an ebiten image. It implements
// game.Surface.
type Screen struct {
	dst     *ebiten.Image
	sprites *SpriteSet
	face    *text.GoXFace

	offsetX, offsetY float64

	// Reused triangle buffers for path fills
	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

// NewScreen creates a screen drawing sprites from set
func NewScreen(set *SpriteSet) *Screen {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Screen{
		sprites: set,
		face:    text.NewGoXFace(basicfont.Face7x13),
		white:   white,
	}
}

// Begin targets dst for the next frame
func (s *Screen) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.offsetX, s.offsetY = 0, 0
}

// Face returns the HUD font face
func (s *Screen) Face() *text.GoXFace {
	return s.face
}

func (s *Screen) SetOffset(dx, dy float64) {
	s.offsetX, s.offsetY = dx, dy
}

// pt converts a world point to screen space
func (s *Screen) pt(x, y float64) (float32, float32) {
	return float32(x + s.offsetX), float32(y + s.offsetY)
}

func (s *Screen) fillPath(path *vector.Path, clr color.RGBA) {
	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.drawVertices(clr)
}

func (s *Screen) strokePath(path *vector.Path, width float32, clr color.RGBA) {
	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
	})
	s.drawVertices(clr)
}

func (s *Screen) drawVertices(clr color.RGBA) {
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(clr.R) / 255
		s.vs[i].ColorG = float32(clr.G) / 255
		s.vs[i].ColorB = float32(clr.B) / 255
		s.vs[i].ColorA = float32(clr.A) / 255
	}
	s.dst.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (s *Screen) DrawIsland(p *island.Polygon) {
	s.dst.Fill(colorSea)
	if p == nil || len(p.Vertices) < 3 {
		return
	}

	var path vector.Path
	for i, v := range p.Vertices {
		x, y := s.pt(v.X, v.Y)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	s.strokePath(&path, 14, colorWetSand)
	s.fillPath(&path, colorSand)
	s.strokePath(&path, 3, colorFoam)
}

func (s *Screen) DrawShadow(x, y, radiusX, radiusY, alpha float64) {
	if radiusX <= 0 || radiusY <= 0 {
		return
	}
	const segments = 24
	var path vector.Path
	for i := 0; i < segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		px, py := s.pt(x+math.Cos(a)*radiusX, y+math.Sin(a)*radiusY)
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()

	clr := colorShadow
	clr.A = uint8(math.Max(0, math.Min(1, alpha)) * 255)
	s.fillPath(&path, clr)
}

func (s *Screen) DrawSprite(sp game.Sprite) {
	img := s.sprites.Image(sp.Kind)
	if img == nil {
		return
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	scaleX := sp.Width / w
	if sp.FlipX {
		scaleX = -scaleX
	}
	scaleY := sp.Height / h * sp.ScaleY

	// Squash keeps the sprite's base on the ground
	var geo ebiten.GeoM
	geo.Translate(-w/2, -h/2)
	geo.Scale(scaleX, scaleY)
	geo.Rotate(sp.Rotation)
	geo.Translate(sp.X+s.offsetX, sp.Y+s.offsetY+(1-sp.ScaleY)*sp.Height/2)

	if sp.HasFlash {
		var cm colorm.ColorM
		cm.Scale(0, 0, 0, 1)
		cm.Translate(float64(sp.Flash.R)/255, float64(sp.Flash.G)/255, float64(sp.Flash.B)/255, 0)
		op := &colorm.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterLinear}
		colorm.DrawImage(s.dst, img, cm, op)
		return
	}

	op := &ebiten.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterLinear}
	s.dst.DrawImage(img, op)
}

func (s *Screen) DrawHealthBar(x, y, width, health, maxHealth float64) {
	if maxHealth <= 0 || health >= maxHealth {
		return
	}
	pct := math.Max(0, health/maxHealth)
	fill := colorBarHigh
	switch {
	case pct <= 0.25:
		fill = colorBarLow
	case pct <= 0.5:
		fill = colorBarMid
	}

	bx, by := s.pt(x-width/2, y)
	vector.DrawFilledRect(s.dst, bx, by, float32(width), 5, colorBarBack, true)
	vector.DrawFilledRect(s.dst, bx, by, float32(width*pct), 5, fill, true)
}

func (s *Screen) DrawCone(x, y, radius, angle, arc float64) {
	cx, cy := s.pt(x, y)
	var path vector.Path
	path.MoveTo(cx, cy)
	path.Arc(cx, cy, float32(radius), float32(angle-arc/2), float32(angle+arc/2), vector.Clockwise)
	path.Close()

	s.fillPath(&path, colorCone)
	s.strokePath(&path, 1, colorConeEdge)
}

func (s *Screen) DrawBlade(x, y, angle, length, trailAlpha float64) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	hx, hy := s.pt(x+cos*10, y+sin*10)
	tx, ty := s.pt(x+cos*length, y+sin*length)
	gx, gy := s.pt(x+cos*16, y+sin*16)

	if trailAlpha > 0 {
		cx, cy := s.pt(x, y)
		var path vector.Path
		path.Arc(cx, cy, float32(length), float32(angle-0.5), float32(angle+0.5), vector.Clockwise)
		trail := colorFoam
		trail.A = uint8(math.Min(1, trailAlpha) * 255)
		s.strokePath(&path, 3, trail)
	}

	vector.StrokeLine(s.dst, gx, gy, tx, ty, 4, colorBlade, true)
	vector.StrokeLine(s.dst, hx, hy, gx, gy, 4, colorHilt, true)
	vector.DrawFilledCircle(s.dst, gx, gy, 4, colorGuard, true)
}

func (s *Screen) DrawParticle(p *fx.Particle) {
	clr := p.Color
	clr.A = uint8(float64(clr.A) * p.Alpha())
	if clr.A == 0 {
		return
	}
	x, y := s.pt(p.X, p.Y)
	size := float32(p.Size)

	switch p.Kind {
	case fx.KindSplinter:
		dx := float32(math.Cos(p.Rotation) * p.Size)
		dy := float32(math.Sin(p.Rotation) * p.Size)
		vector.StrokeLine(s.dst, x-dx, y-dy, x+dx, y+dy, size/2, clr, true)
	case fx.KindCoin:
		vector.DrawFilledCircle(s.dst, x, y, size/2+1, colorHilt, true)
		vector.DrawFilledCircle(s.dst, x, y, size/2, clr, true)
	case fx.KindDust:
		vector.DrawFilledCircle(s.dst, x, y, size/2, clr, true)
	default:
		vector.DrawFilledRect(s.dst, x-size/2, y-size/2, size, size, clr, true)
	}
}

func (s *Screen) DrawText(t *fx.FloatingText) {
	x, y := s.pt(t.X, t.Y)
	s.drawLabel(t.Text, float64(x), float64(y), t.Size, t.Color, t.Alpha(), text.AlignCenter)
}

// drawLabel draws str centered vertically on y with a one-pixel drop shadow
func (s *Screen) drawLabel(str string, x, y, size float64, clr color.RGBA, alpha float64, align text.Align) {
	scale := size / baseFontSize
	for _, pass := range []struct {
		dx, dy float64
		clr    color.RGBA
	}{
		{1, 1, colorTextShadow},
		{0, 0, clr},
	} {
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+pass.dx*scale, y+pass.dy*scale)
		op.ColorScale.ScaleWithColor(pass.clr)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.PrimaryAlign = align
		op.SecondaryAlign = text.AlignCenter
		text.Draw(s.dst, str, s.face, op)
	}
}

func (s *Screen) DrawDebugLine(x1, y1, x2, y2 float64, clr color.RGBA) {
	ax, ay := s.pt(x1, y1)
	bx, by := s.pt(x2, y2)
	vector.StrokeLine(s.dst, ax, ay, bx, by, 1, clr, false)
}
