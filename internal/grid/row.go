package grid

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
)

// Row is one set laid out horizontally, with its own scroll animation
type Row struct {
	Set   domain.Set
	Tiles []*Tile

	selection int
	offset    *motion.Lerper
}

func newRow(set domain.Set, duration time.Duration, clock motion.Clock) *Row {
	tiles := make([]*Tile, len(set.Items))
	for i, item := range set.Items {
		tiles[i] = newTile(item, duration, clock)
	}
	return &Row{
		Set:    set,
		Tiles:  tiles,
		offset: motion.NewLerper(duration, clock),
	}
}

// Title returns the set title
func (r *Row) Title() string {
	return r.Set.Title
}

// Selection returns the selected column
func (r *Row) Selection() int {
	return r.selection
}

// Len returns the number of tiles
func (r *Row) Len() int {
	return len(r.Tiles)
}

// Offset returns the row's horizontal scroll animator
func (r *Row) Offset() *motion.Lerper {
	return r.offset
}

// SelectedTile returns the selected tile, or nil for an empty row
func (r *Row) SelectedTile() *Tile {
	if r.selection < 0 || r.selection >= len(r.Tiles) {
		return nil
	}
	return r.Tiles[r.selection]
}

// MoveLeft selects the previous tile. It is a no-op at the first tile, on an
// empty row, or while the row is still scrolling.
func (r *Row) MoveLeft() bool {
	if r.offset.IsActive() || len(r.Tiles) == 0 || r.selection == 0 {
		return false
	}
	r.unselectCurrent()
	r.selection--
	r.offset.Arm(r.target())
	r.selectCurrent()
	return true
}

// MoveRight selects the next tile. It is a no-op at the last tile, on an
// empty row, or while the row is still scrolling.
func (r *Row) MoveRight() bool {
	if r.offset.IsActive() || r.selection >= len(r.Tiles)-1 {
		return false
	}
	r.unselectCurrent()
	r.selection++
	r.offset.Arm(r.target())
	r.selectCurrent()
	return true
}

// target scrolls the selected tile to the row origin
func (r *Row) target() mgl32.Mat4 {
	return mgl32.Translate3D(-float32(r.selection)*Spacing, 0, 0)
}

func (r *Row) unselectCurrent() {
	if tile := r.SelectedTile(); tile != nil {
		tile.Unselect()
	}
}

func (r *Row) selectCurrent() {
	if tile := r.SelectedTile(); tile != nil {
		tile.Select()
	}
}

func (r *Row) animating() bool {
	if r.offset.IsActive() {
		return true
	}
	for _, tile := range r.Tiles {
		if tile.lift.IsActive() {
			return true
		}
	}
	return false
}

func (r *Row) draw(rd Renderer, m mgl32.Mat4, textures TextureSource) {
	m = m.Mul4(mgl32.Scale3D(Aspect, 1, 1))
	m = m.Mul4(r.offset.Sample())

	next := mgl32.Translate3D(Spacing, 0, 0)
	for _, tile := range r.Tiles {
		tile.draw(rd, m, textures)
		m = m.Mul4(next)
	}
}
