package grid

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
)

// Layout constants, in layout units
const (
	// Spacing between neighbouring rows and tiles
	Spacing float32 = 1.0

	// Aspect is the width of a tile relative to its height
	Aspect float32 = 1.78

	// Margin shrinks each tile inside its cell and sizes the selection lift
	Margin float32 = 0.15
)

// PlaceholderColor is drawn for tiles whose texture has not arrived
var PlaceholderColor = mgl32.Vec4{1, 1, 1, 0.75}

// Renderer draws unit quads ([0,1]x[0,1]) under a transform
type Renderer interface {
	DrawTexturedQuad(transform mgl32.Mat4, tex domain.Texture)
	DrawPlaceholderQuad(transform mgl32.Mat4, color mgl32.Vec4)
}

// TextureSource looks up decoded textures by image URL
type TextureSource interface {
	Get(url string) (domain.Texture, bool)
}
