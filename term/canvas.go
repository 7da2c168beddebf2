// Package term draws the island on a terminal through tcell. One cell covers
// CellWidth by CellHeight world pixels.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"islandbrawl/fx"
	"islandbrawl/game"
	"islandbrawl/island"
)

// Cell footprint in world pixels. Terminal cells are about twice as tall as
// they are wide.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

var (
	styleSea   = tcell.StyleDefault.Background(tcell.NewRGBColor(46, 139, 187)).Foreground(tcell.NewRGBColor(200, 230, 255))
	styleSand  = tcell.StyleDefault.Background(tcell.NewRGBColor(224, 205, 167)).Foreground(tcell.NewRGBColor(90, 70, 40))
	styleShore = tcell.StyleDefault.Background(tcell.NewRGBColor(196, 174, 130)).Foreground(tcell.ColorWhite)
)

// Canvas implements game.Surface on a tcell screen
type Canvas struct {
	screen           tcell.Screen
	offsetX, offsetY float64

	// land caches which cells are on the island for the current polygon
	land    []bool
	landFor *island.Polygon
	cols    int
	rows    int
}

// NewCanvas wraps screen
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

// WorldSize returns the play area matching the terminal size
func WorldSize(cols, rows int) (int, int) {
	return int(float64(cols) * CellWidth), int(float64(rows) * CellHeight)
}

// cell converts world coordinates to a terminal cell
func (c *Canvas) cell(x, y float64) (int, int) {
	return int(math.Floor((x + c.offsetX) / CellWidth)), int(math.Floor((y + c.offsetY) / CellHeight))
}

func (c *Canvas) set(col, row int, r rune, style tcell.Style) {
	cols, rows := c.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	c.screen.SetContent(col, row, r, nil, style)
}

// setFg draws r keeping the background already in the cell
func (c *Canvas) setFg(col, row int, r rune, clr color.RGBA) {
	cols, rows := c.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	_, _, style, _ := c.screen.GetContent(col, row)
	c.screen.SetContent(col, row, r, nil, style.Foreground(rgb(clr)))
}

func rgb(clr color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(clr.R), int32(clr.G), int32(clr.B))
}

func (c *Canvas) SetOffset(dx, dy float64) {
	c.offsetX, c.offsetY = dx, dy
}

func (c *Canvas) DrawIsland(p *island.Polygon) {
	cols, rows := c.screen.Size()
	if p != c.landFor || cols != c.cols || rows != c.rows {
		c.rasterize(p, cols, rows)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			style := styleSea
			r := ' '
			if c.land[row*cols+col] {
				style = styleSand
				if c.isShore(col, row) {
					style = styleShore
				}
			} else if (col+row)%7 == 0 {
				r = '~'
			}
			c.screen.SetContent(col, row, r, nil, style)
		}
	}
}

// rasterize samples the polygon at each cell center
func (c *Canvas) rasterize(p *island.Polygon, cols, rows int) {
	c.landFor = p
	c.cols, c.rows = cols, rows
	c.land = make([]bool, cols*rows)
	if p == nil {
		return
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := (float64(col) + 0.5) * CellWidth
			y := (float64(row) + 0.5) * CellHeight
			c.land[row*cols+col] = p.Contains(x, y, 0)
		}
	}
}

func (c *Canvas) isShore(col, row int) bool {
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nc, nr := col+d[0], row+d[1]
		if nc < 0 || nr < 0 || nc >= c.cols || nr >= c.rows || !c.land[nr*c.cols+nc] {
			return true
		}
	}
	return false
}

// Shadows are too small to read at cell resolution
func (c *Canvas) DrawShadow(x, y, radiusX, radiusY, alpha float64) {}

var spriteGlyphs = [game.SpriteCount]struct {
	r   rune
	clr color.RGBA
}{
	game.SpritePlayer:     {'@', color.RGBA{200, 20, 20, 255}},
	game.SpriteChest:      {'$', color.RGBA{139, 69, 19, 255}},
	game.SpriteRock:       {'O', color.RGBA{90, 90, 90, 255}},
	game.SpriteCrab:       {'c', color.RGBA{200, 60, 30, 255}},
	game.SpritePirate:     {'P', color.RGBA{30, 50, 110, 255}},
	game.SpriteCannonBall: {'*', color.RGBA{17, 17, 17, 255}},
	game.SpriteCarrot:     {'v', color.RGBA{230, 120, 0, 255}},
	game.SpriteParrot:     {'p', color.RGBA{220, 30, 30, 255}},
}

func (c *Canvas) DrawSprite(s game.Sprite) {
	if s.Kind < 0 || s.Kind >= game.SpriteCount {
		return
	}
	glyph := spriteGlyphs[s.Kind]
	clr := glyph.clr
	if s.HasFlash {
		clr = s.Flash
	}
	col, row := c.cell(s.X, s.Y)
	c.setFg(col, row, glyph.r, clr)
}

func (c *Canvas) DrawHealthBar(x, y, width, health, maxHealth float64) {
	if maxHealth <= 0 || health >= maxHealth {
		return
	}
	pct := math.Max(0, health/maxHealth)
	cells := max(1, int(math.Round(width/CellWidth)))
	filled := int(math.Ceil(pct * float64(cells)))

	clr := color.RGBA{0, 200, 0, 255}
	switch {
	case pct <= 0.25:
		clr = color.RGBA{220, 0, 0, 255}
	case pct <= 0.5:
		clr = color.RGBA{200, 200, 0, 255}
	}

	col, row := c.cell(x-width/2, y)
	for i := 0; i < cells; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		c.setFg(col+i, row, r, clr)
	}
}

// The hit cone is marked by its outer edge only
func (c *Canvas) DrawCone(x, y, radius, angle, arc float64) {
	for _, a := range []float64{angle - arc/2, angle + arc/2} {
		col, row := c.cell(x+math.Cos(a)*radius, y+math.Sin(a)*radius)
		c.setFg(col, row, '·', color.RGBA{255, 255, 255, 255})
	}
}

func (c *Canvas) DrawBlade(x, y, angle, length, trailAlpha float64) {
	col, row := c.cell(x+math.Cos(angle)*length*0.7, y+math.Sin(angle)*length*0.7)
	c.setFg(col, row, bladeRune(angle), color.RGBA{230, 230, 230, 255})
}

// bladeRune picks the line glyph closest to angle
func bladeRune(angle float64) rune {
	a := math.Mod(angle, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '─'
	case a < 3*math.Pi/8:
		return '\\'
	case a < 5*math.Pi/8:
		return '│'
	default:
		return '/'
	}
}

func (c *Canvas) DrawParticle(p *fx.Particle) {
	if p.Alpha() < 0.2 {
		return
	}
	r := '.'
	switch p.Kind {
	case fx.KindCoin:
		r = 'o'
	case fx.KindSplinter:
		r = ','
	case fx.KindDust:
		r = '°'
	}
	col, row := c.cell(p.X, p.Y)
	c.setFg(col, row, r, p.Color)
}

func (c *Canvas) DrawText(t *fx.FloatingText) {
	col, row := c.cell(t.X, t.Y)
	c.DrawString(col-len(t.Text)/2, row, t.Text, tcell.StyleDefault.Foreground(rgb(t.Color)).Bold(true))
}

// DrawString writes s starting at the given cell
func (c *Canvas) DrawString(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, style)
	}
}

func (c *Canvas) DrawDebugLine(x1, y1, x2, y2 float64, clr color.RGBA) {
	steps := int(math.Max(math.Abs(x2-x1)/CellWidth, math.Abs(y2-y1)/CellHeight)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row := c.cell(x1+(x2-x1)*t, y1+(y2-y1)*t)
		c.setFg(col, row, '+', clr)
	}
}
