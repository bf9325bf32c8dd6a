package grid

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
)

// Tile is the on-screen form of one catalog item
type Tile struct {
	Item domain.Item

	lift     *motion.Lerper
	selected bool
}

func newTile(item domain.Item, duration time.Duration, clock motion.Clock) *Tile {
	return &Tile{
		Item: item,
		lift: motion.NewLerper(duration, clock),
	}
}

// SelectedTransform grows a tile by the margin and lifts it toward the viewer
func SelectedTransform() mgl32.Mat4 {
	scale := mgl32.Scale3D(1+Margin, 1+Margin, 1)
	lift := mgl32.Translate3D(-Margin/4, -Margin/4, 5)
	return lift.Mul4(scale)
}

// Select starts the grow animation. It always restarts, even mid-flight.
func (t *Tile) Select() {
	t.selected = true
	t.lift.Arm(SelectedTransform())
}

// Unselect starts the shrink animation back to rest
func (t *Tile) Unselect() {
	t.selected = false
	t.lift.Arm(mgl32.Ident4())
}

// IsSelected reports the logical selection state
func (t *Tile) IsSelected() bool {
	return t.selected
}

// Lift returns the tile's highlight animator
func (t *Tile) Lift() *motion.Lerper {
	return t.lift
}

func (t *Tile) draw(r Renderer, m mgl32.Mat4, textures TextureSource) {
	m = m.Mul4(mgl32.Scale3D(1-Margin, 1-Margin, 1))
	m = m.Mul4(mgl32.Translate3D(Margin/2, Margin/2, 0))
	m = m.Mul4(t.lift.Sample())

	if tex, ok := textures.Get(t.Item.ImageURL); ok {
		r.DrawTexturedQuad(m, tex)
		return
	}
	r.DrawPlaceholderQuad(m, PlaceholderColor)
}
