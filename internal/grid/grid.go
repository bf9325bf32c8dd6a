package grid

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
)

// Option configures a Grid
type Option func(*Grid)

// WithDuration sets the transition time for every animator in the grid
func WithDuration(d time.Duration) Option {
	return func(g *Grid) {
		g.duration = d
	}
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock motion.Clock) Option {
	return func(g *Grid) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Grid is the vertical stack of rows plus the selected row
type Grid struct {
	rows      []*Row
	selection int
	vertical  *motion.Lerper

	duration time.Duration
	clock    motion.Clock
}

// New creates an empty grid
func New(opts ...Option) *Grid {
	g := &Grid{
		duration: motion.DefaultDuration,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.vertical = motion.NewLerper(g.duration, g.clock)
	return g
}

// Add appends a row for the set and re-selects the current tile, so the first
// row added gets its first tile highlighted.
func (g *Grid) Add(set domain.Set) {
	g.rows = append(g.rows, newRow(set, g.duration, g.clock))
	g.selectCurrent()
}

// Len returns the number of rows
func (g *Grid) Len() int {
	return len(g.rows)
}

// Rows returns the rows in display order
func (g *Grid) Rows() []*Row {
	return g.rows
}

// Titles returns the row titles in display order
func (g *Grid) Titles() []string {
	titles := make([]string, len(g.rows))
	for i, row := range g.rows {
		titles[i] = row.Title()
	}
	return titles
}

// Selection returns the selected row and that row's selected column
func (g *Grid) Selection() (row, col int) {
	if r := g.SelectedRow(); r != nil {
		return g.selection, r.Selection()
	}
	return g.selection, 0
}

// SelectedRow returns the selected row, or nil for an empty grid
func (g *Grid) SelectedRow() *Row {
	if g.selection < 0 || g.selection >= len(g.rows) {
		return nil
	}
	return g.rows[g.selection]
}

// SelectedTile returns the selected tile, or nil if there is none
func (g *Grid) SelectedTile() *Tile {
	if r := g.SelectedRow(); r != nil {
		return r.SelectedTile()
	}
	return nil
}

// SelectedItem returns the item behind the selected tile
func (g *Grid) SelectedItem() (domain.Item, bool) {
	if tile := g.SelectedTile(); tile != nil {
		return tile.Item, true
	}
	return domain.Item{}, false
}

// Vertical returns the grid's scroll animator
func (g *Grid) Vertical() *motion.Lerper {
	return g.vertical
}

// Animating reports whether any animator in the grid is mid-transition
func (g *Grid) Animating() bool {
	if g.vertical.IsActive() {
		return true
	}
	for _, row := range g.rows {
		if row.animating() {
			return true
		}
	}
	return false
}

// MoveUp selects the previous row
func (g *Grid) MoveUp() bool {
	if g.selection == 0 {
		return false
	}
	return g.moveTo(g.selection - 1)
}

// MoveDown selects the next row
func (g *Grid) MoveDown() bool {
	return g.moveTo(g.selection + 1)
}

// MoveLeft selects the previous tile in the selected row
func (g *Grid) MoveLeft() bool {
	if r := g.SelectedRow(); r != nil {
		return r.MoveLeft()
	}
	return false
}

// MoveRight selects the next tile in the selected row
func (g *Grid) MoveRight() bool {
	if r := g.SelectedRow(); r != nil {
		return r.MoveRight()
	}
	return false
}

// JumpTo selects an arbitrary row with a single transition. The target row
// keeps its own column.
func (g *Grid) JumpTo(row int) bool {
	return g.moveTo(row)
}

func (g *Grid) moveTo(row int) bool {
	if row < 0 || row >= len(g.rows) || row == g.selection {
		return false
	}
	if g.vertical.IsActive() {
		return false
	}
	g.unselectCurrent()
	g.selection = row
	g.vertical.Arm(g.target())
	g.selectCurrent()
	return true
}

// target scrolls the selected row to the grid origin
func (g *Grid) target() mgl32.Mat4 {
	return mgl32.Translate3D(0, -float32(g.selection)*Spacing, 0)
}

func (g *Grid) selectCurrent() {
	if tile := g.SelectedTile(); tile != nil {
		tile.Select()
	}
}

func (g *Grid) unselectCurrent() {
	if tile := g.SelectedTile(); tile != nil {
		tile.Unselect()
	}
}

// Draw emits one quad per tile. Rows stack downward from the origin and the
// selected tile ends up at the origin once transitions settle.
func (g *Grid) Draw(r Renderer, projection mgl32.Mat4, textures TextureSource) {
	m := projection.Mul4(g.vertical.Sample())
	next := mgl32.Translate3D(0, Spacing, 0)
	for _, row := range g.rows {
		row.draw(r, m, textures)
		m = m.Mul4(next)
	}
}
