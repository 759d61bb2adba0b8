package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Pre-rendered sprites for fast batched drawing
var (
	fishSprite *ebiten.Image
	fishSize   = 14.0 // sprite width in pixels, the fish faces right
)

func init() {
	// Legend:
	// . = Transparent
	// B = Body
	// D = Dark back
	// L = Light belly
	// E = Eye
	// F = Fins
	design := []string{
		"......DDD.....",
		"F...DDDDDDD...",
		"FF.DBBBBBBBB..",
		".FFBBBBBBBBEB.",
		".FFLLLLLLLLLL.",
		"FF.LLLLLLLLL..",
		"F....LLLLL....",
	}

	palette := map[rune]color.RGBA{
		'B': {R: 80, G: 170, B: 255, A: 255},  // Body
		'D': {R: 30, G: 90, B: 180, A: 255},   // Dark back
		'L': {R: 190, G: 230, B: 255, A: 255}, // Light belly
		'E': {R: 10, G: 10, B: 30, A: 255},    // Eye
		'F': {R: 255, G: 170, B: 60, A: 255},  // Fins
	}

	fishSprite = generateSprite(design, palette)
}

// generateSprite converts an ASCII grid into an Ebiten image
func generateSprite(design []string, palette map[rune]color.RGBA) *ebiten.Image {
	h := len(design)
	w := 0
	for _, row := range design {
		w = max(w, len(row))
	}
	img := ebiten.NewImage(w, h)

	for y, row := range design {
		for x, char := range row {
			if col, ok := palette[char]; ok {
				img.Set(x, y, col)
			}
		}
	}
	return img
}
