package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"islandbrawl/game"
)

// KeyboardInput reads WASD or the arrow keys and aims at the mouse cursor
type KeyboardInput struct{}

func (KeyboardInput) Poll(game.View) game.InputState {
	mx, my := ebiten.CursorPosition()
	return game.InputState{
		Up:       ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:     ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		PointerX: float64(mx),
		PointerY: float64(my),
	}
}
