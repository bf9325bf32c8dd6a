package tui

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/grid"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"golang.org/x/image/draw"
)

// upperHalf draws the top pixel as foreground and the bottom as background
const upperHalf = "▀"

var errEmptyImage = errors.New("image has no pixels")

// quad is a draw call recorded during grid.Draw and painted afterwards
type quad struct {
	transform mgl32.Mat4
	texture   domain.Texture
	color     mgl32.Vec4
	textured  bool
}

// depth is the z of the quad's origin; higher paints later
func (q quad) depth() float32 {
	return q.transform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Z()
}

// Canvas rasterizes grid quads into terminal cells. Every cell holds two
// vertically stacked pixels rendered with a half block glyph, so one layout
// unit is unitW pixels wide and 2*unitH pixels tall.
type Canvas struct {
	cols, rows   int
	unitW, unitH int

	background color.RGBA
	pixels     []color.RGBA
	quads      []quad
}

// NewCanvas creates a canvas with the given cells per layout unit
func NewCanvas(unitW, unitH int) *Canvas {
	return &Canvas{
		unitW:      max(unitW, 1),
		unitH:      max(unitH, 1),
		background: styles.CanvasBackground,
	}
}

// Resize sets the canvas size in terminal cells
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.pixels = make([]color.RGBA, c.cols*c.rows*2)
}

// Size returns the canvas size in terminal cells
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Projection maps layout units to pixels. The layout origin, where the
// selected tile settles, sits half a unit in from the left and one unit
// down so the row above stays partly visible.
func (c *Canvas) Projection() mgl32.Mat4 {
	w := float32(c.unitW)
	h := float32(c.unitH * 2)
	return mgl32.Translate3D(w/2, h, 0).Mul4(mgl32.Scale3D(w, h, 1))
}

// DrawTexturedQuad implements grid.Renderer
func (c *Canvas) DrawTexturedQuad(m mgl32.Mat4, tex domain.Texture) {
	c.quads = append(c.quads, quad{transform: m, texture: tex, textured: true})
}

// DrawPlaceholderQuad implements grid.Renderer
func (c *Canvas) DrawPlaceholderQuad(m mgl32.Mat4, col mgl32.Vec4) {
	c.quads = append(c.quads, quad{transform: m, color: col})
}

// Frame draws the grid and returns the rendered terminal lines
func (c *Canvas) Frame(g *grid.Grid, textures grid.TextureSource) string {
	c.quads = c.quads[:0]
	g.Draw(c, c.Projection(), textures)
	c.Paint()
	return c.Render()
}

// Paint rasterizes the recorded quads back to front
func (c *Canvas) Paint() {
	for i := range c.pixels {
		c.pixels[i] = c.background
	}

	slices.SortStableFunc(c.quads, func(a, b quad) int {
		da, db := a.depth(), b.depth()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	for _, q := range c.quads {
		c.fill(q)
	}
}

// At returns the pixel at x, y. Pixel rows are half terminal rows.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return c.background
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) fill(q quad) {
	p0 := q.transform.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	p1 := q.transform.Mul4x1(mgl32.Vec4{1, 1, 0, 1})
	x0, x1 := min(p0.X(), p1.X()), max(p0.X(), p1.X())
	y0, y1 := min(p0.Y(), p1.Y()), max(p0.Y(), p1.Y())
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return
	}

	// pixels whose centers fall inside the quad
	left := max(pixelStart(x0), 0)
	right := min(pixelStart(x1), c.cols)
	top := max(pixelStart(y0), 0)
	bottom := min(pixelStart(y1), c.rows*2)

	img, sampled := q.texture.(image.Image)
	if q.textured && !sampled {
		// unknown texture kinds render as placeholders
		q.color = grid.PlaceholderColor
	}

	for y := top; y < bottom; y++ {
		v := (float32(y) + 0.5 - y0) / (y1 - y0)
		for x := left; x < right; x++ {
			i := y*c.cols + x
			if q.textured && sampled {
				u := (float32(x) + 0.5 - x0) / (x1 - x0)
				c.pixels[i] = sample(img, u, v)
				continue
			}
			c.pixels[i] = blend(c.pixels[i], q.color)
		}
	}
}

// pixelStart returns the first pixel whose center is at or after coord
func pixelStart(coord float32) int {
	return int(math.Ceil(float64(coord) - 0.5))
}

// sample does a nearest lookup at normalized coordinates
func sample(img image.Image, u, v float32) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + min(int(u*float32(b.Dx())), b.Dx()-1)
	y := b.Min.Y + min(int(v*float32(b.Dy())), b.Dy()-1)
	switch t := img.(type) {
	case cellTexture:
		return t.RGBAAt(x, y)
	case *image.RGBA:
		return t.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// blend composites a straight-alpha color over dst
func blend(dst color.RGBA, src mgl32.Vec4) color.RGBA {
	a := float64(mgl32.Clamp(src.W(), 0, 1))
	mix := func(d uint8, s float32) uint8 {
		s = mgl32.Clamp(s, 0, 1)
		return uint8(math.Round(float64(s)*255*a + float64(d)*(1-a)))
	}
	return color.RGBA{
		R: mix(dst.R, src.X()),
		G: mix(dst.G, src.Y()),
		B: mix(dst.B, src.Z()),
		A: 0xff,
	}
}

// Render turns the pixel buffer into styled terminal lines. Runs of cells
// with the same colors share one style.
func (c *Canvas) Render() string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var line strings.Builder
		topRow := c.pixels[row*2*c.cols : (row*2+1)*c.cols]
		bottomRow := c.pixels[(row*2+1)*c.cols : (row*2+2)*c.cols]

		for x := 0; x < c.cols; {
			top, bottom := topRow[x], bottomRow[x]
			run := 1
			for x+run < c.cols && topRow[x+run] == top && bottomRow[x+run] == bottom {
				run++
			}
			line.WriteString(cellRun(top, bottom, run))
			x += run
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func cellRun(top, bottom color.RGBA, n int) string {
	style := lipgloss.NewStyle().Background(styles.Hex(bottom))
	if top == bottom {
		return style.Render(strings.Repeat(" ", n))
	}
	return style.Foreground(styles.Hex(top)).Render(strings.Repeat(upperHalf, n))
}

// cellTexture is an image pre-scaled to a tile's pixel footprint
type cellTexture struct {
	*image.RGBA
}

// Size implements domain.Texture
func (t cellTexture) Size() (int, int) {
	b := t.Bounds()
	return b.Dx(), b.Dy()
}

// Upload implements cache.Uploader. Images are scaled once to the size of a
// tile so sampling during Paint stays cheap.
func (c *Canvas) Upload(img image.Image) (domain.Texture, error) {
	src := img.Bounds()
	if src.Empty() {
		return nil, errEmptyImage
	}

	w := int(math.Round(float64(grid.Aspect) * float64(c.unitW)))
	h := c.unitH * 2
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return cellTexture{RGBA: dst}, nil
}
