package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"islandbrawl/game"
)

var (
	colorGold       = color.RGBA{255, 215, 0, 255}
	colorEnergy     = color.RGBA{80, 220, 255, 255}
	colorEnergyLow  = color.RGBA{255, 90, 60, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorDim        = color.RGBA{150, 150, 150, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 150}
	colorShopPanel  = color.RGBA{30, 24, 18, 230}
	colorShopCursor = color.RGBA{255, 215, 0, 60}
)

const (
	energyBarWidth  = 300
	energyBarHeight = 16
	shopRowHeight   = 24
)

// drawHUD draws the gold counter, the energy bar and the frame rate
func (s *Screen) drawHUD(g *game.Game, fps float64) {
	cfg := g.Config()
	width, _ := g.Bounds()

	// Gold sits where coins fly to
	ax, ay := float32(cfg.CoinAnchorX), float32(cfg.CoinAnchorY)
	vector.DrawFilledCircle(s.dst, ax, ay, 11, colorHilt, true)
	vector.DrawFilledCircle(s.dst, ax, ay, 10, colorGold, true)
	s.drawLabel(fmt.Sprintf("%.0f", g.Gold()), cfg.CoinAnchorX+20, cfg.CoinAnchorY, 22, colorGold, 1, text.AlignStart)

	if g.State() == game.StatePlaying {
		frac := g.EnergyFraction()
		x := float32(width/2 - energyBarWidth/2)
		y := float32(20)
		fill := colorEnergy
		if frac < 0.25 {
			fill = colorEnergyLow
		}
		vector.DrawFilledRect(s.dst, x-2, y-2, energyBarWidth+4, energyBarHeight+4, colorBarBack, true)
		vector.DrawFilledRect(s.dst, x, y, float32(energyBarWidth*frac), energyBarHeight, fill, true)
		s.drawLabel(fmt.Sprintf("ENERGY %.0f", g.Energy()), width/2, float64(y)+energyBarHeight/2, 13, colorWhite, 1, text.AlignCenter)
	}

	ebitenutil.DebugPrintAt(s.dst, fmt.Sprintf("FPS: %.1f  TPS: %.1f", fps, ebiten.ActualTPS()), 10, int(cfg.CoinAnchorY)+30)
}

// drawMenu draws the title overlay
func (s *Screen) drawMenu(g *game.Game) {
	width, height := g.Bounds()
	vector.DrawFilledRect(s.dst, 0, 0, float32(width), float32(height), colorOverlay, false)
	s.drawLabel("ISLAND BRAWL", width/2, height/2-40, 48, colorGold, 1, text.AlignCenter)
	s.drawLabel("WASD to move, mouse to aim. The cutlass swings itself.", width/2, height/2+20, 16, colorWhite, 1, text.AlignCenter)
	s.drawLabel("Press SPACE or click to set sail", width/2, height/2+50, 16, colorWhite, 1, text.AlignCenter)
}

// drawShop draws the upgrade list with the cursor row highlighted
func (s *Screen) drawShop(g *game.Game, tree *game.SkillTree, cursor int, message string) {
	width, height := g.Bounds()
	vector.DrawFilledRect(s.dst, 0, 0, float32(width), float32(height), colorOverlay, false)

	nodes := tree.Nodes()
	panelW := 520.0
	panelH := float64(len(nodes))*shopRowHeight + 110
	px := width/2 - panelW/2
	py := max(10, height/2-panelH/2)
	vector.DrawFilledRect(s.dst, float32(px), float32(py), float32(panelW), float32(panelH), colorShopPanel, true)

	s.drawLabel("SHIPWRIGHT", width/2, py+24, 26, colorGold, 1, text.AlignCenter)

	rowY := py + 60
	for i, node := range nodes {
		y := rowY + float64(i)*shopRowHeight
		if i == cursor {
			vector.DrawFilledRect(s.dst, float32(px+8), float32(y-shopRowHeight/2), float32(panelW-16), shopRowHeight, colorShopCursor, false)
		}

		clr := colorDim
		status := fmt.Sprintf("%.0f", node.Cost)
		switch {
		case tree.Owned(node.ID):
			status = "OWNED"
		case tree.Available(node.ID) && g.Gold() >= node.Cost:
			clr = colorWhite
		case tree.Available(node.ID):
			clr = colorEnergyLow
		default:
			status = "LOCKED"
		}
		s.drawLabel(node.Name, px+20, y, 14, clr, 1, text.AlignStart)
		s.drawLabel(node.Description, px+200, y, 12, clr, 1, text.AlignStart)
		s.drawLabel(status, px+panelW-20, y, 14, clr, 1, text.AlignEnd)
	}

	footer := rowY + float64(len(nodes))*shopRowHeight
	if message != "" {
		s.drawLabel(message, width/2, footer, 14, colorEnergyLow, 1, text.AlignCenter)
	}
	s.drawLabel("UP/DOWN select, ENTER buy, SPACE sail again", width/2, footer+22, 14, colorWhite, 1, text.AlignCenter)
}
