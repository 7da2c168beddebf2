package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"islandbrawl/game"
)

//go:embed assets/*.svg
var assets embed.FS

// spriteResolution is the raster size of every sprite; they are scaled to
// the footprint at draw time
const spriteResolution = 96

// SpriteSet holds one rasterized image per sprite kind
type SpriteSet struct {
	images [game.SpriteCount]*ebiten.Image
}

// LoadSprites rasterizes the embedded SVG art. A sprite that fails to load is
// replaced by a flat placeholder and reported in the returned error; the set
// is always usable.
func LoadSprites(logger *log.Logger) (*SpriteSet, error) {
	set := &SpriteSet{}
	var firstErr error

	for kind := game.SpriteKind(0); kind < game.SpriteCount; kind++ {
		img, err := loadSprite(kind)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to load sprite %s: %w", kind, err)
			}
			img = placeholderImage(spriteResolution, spriteResolution, placeholderColor(kind))
		}

		// Optionally save PNG for debugging
		if os.Getenv("DEBUG_SPRITES") == "1" {
			saveDebugPNG(logger, img, "debug_"+kind.String()+".png")
		}

		set.images[kind] = ebiten.NewImageFromImage(img)
	}

	return set, firstErr
}

// Image returns the sprite for kind, or nil when out of range
func (s *SpriteSet) Image(kind game.SpriteKind) *ebiten.Image {
	if s == nil || kind < 0 || kind >= game.SpriteCount {
		return nil
	}
	return s.images[kind]
}

func loadSprite(kind game.SpriteKind) (image.Image, error) {
	data, err := assets.ReadFile("assets/" + kind.String() + ".svg")
	if err != nil {
		return nil, err
	}
	return svgToImage(data, spriteResolution, spriteResolution)
}

// svgToImage rasterizes SVG data at the given size
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// placeholderImage draws a filled disc with a dark rim
func placeholderImage(width, height int, clr color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dark := color.RGBA{0, 0, 0, 255}
	cx, cy := float64(width)/2, float64(height)/2
	r := min(cx, cy) - 1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := dx*dx + dy*dy
			switch {
			case d < (r-2)*(r-2):
				img.Set(x, y, clr)
			case d < r*r:
				img.Set(x, y, dark)
			}
		}
	}
	return img
}

func placeholderColor(kind game.SpriteKind) color.RGBA {
	switch kind {
	case game.SpritePlayer:
		return color.RGBA{255, 77, 77, 255}
	case game.SpriteChest:
		return color.RGBA{139, 69, 19, 255}
	case game.SpriteRock:
		return color.RGBA{138, 138, 138, 255}
	case game.SpriteCrab:
		return color.RGBA{230, 90, 60, 255}
	case game.SpritePirate:
		return color.RGBA{47, 79, 127, 255}
	case game.SpriteCannonBall:
		return color.RGBA{17, 17, 17, 255}
	case game.SpriteCarrot:
		return color.RGBA{255, 165, 0, 255}
	default:
		return color.RGBA{224, 32, 32, 255}
	}
}

// saveDebugPNG saves a PNG image for debugging purposes
func saveDebugPNG(logger *log.Logger, img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Printf("Failed to create debug PNG: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Printf("Failed to encode debug PNG: %v", err)
	}
}
