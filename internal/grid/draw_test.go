package grid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	w, h int
}

func (f fakeTexture) Size() (int, int) { return f.w, f.h }

type textureMap map[string]domain.Texture

func (m textureMap) Get(url string) (domain.Texture, bool) {
	tex, ok := m[url]
	return tex, ok
}

type quad struct {
	transform mgl32.Mat4
	texture   domain.Texture
	color     mgl32.Vec4
}

type recorder struct {
	quads []quad
}

func (r *recorder) DrawTexturedQuad(m mgl32.Mat4, tex domain.Texture) {
	r.quads = append(r.quads, quad{transform: m, texture: tex})
}

func (r *recorder) DrawPlaceholderQuad(m mgl32.Mat4, c mgl32.Vec4) {
	r.quads = append(r.quads, quad{transform: m, color: c})
}

// origin maps the quad's (0,0) corner through its transform
func (q quad) origin() mgl32.Vec3 {
	return q.transform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

func TestDraw_TexturedAndPlaceholder(t *testing.T) {
	clk := newFakeClock()
	g := newTestGrid(clk, 2, 2)
	tex := fakeTexture{w: 4, h: 2}

	r := &recorder{}
	g.Draw(r, mgl32.Ident4(), textureMap{"r0-c1": tex})

	require.Len(t, r.quads, 4)
	for i, q := range r.quads {
		if i == 1 {
			assert.Equal(t, tex, q.texture)
			continue
		}
		assert.Nil(t, q.texture)
		assert.Equal(t, PlaceholderColor, q.color)
	}
}

func TestDraw_RestingLayout(t *testing.T) {
	clk := newFakeClock()
	g := newTestGrid(clk, 2, 2)
	clk.settle()

	r := &recorder{}
	g.Draw(r, mgl32.Ident4(), textureMap{})
	require.Len(t, r.quads, 4)

	// row 1, column 1: one cell right and one row down, inset by the margin
	inset := Margin / 2 * (1 - Margin)
	got := r.quads[3].origin()
	assert.InDelta(t, (1+inset)*Aspect, got.X(), 1e-5)
	assert.InDelta(t, 1+inset, got.Y(), 1e-5)
	assert.InDelta(t, 0, got.Z(), 1e-5)

	// the selected tile is lifted toward the viewer
	selected := r.quads[0].origin()
	assert.InDelta(t, 5, selected.Z(), 1e-5)
	assert.InDelta(t, (Margin/2-Margin/4)*(1-Margin)*Aspect, selected.X(), 1e-5)
}

func TestDraw_SelectedRowScrollsToOrigin(t *testing.T) {
	clk := newFakeClock()
	g := newTestGrid(clk, 2, 2)

	require.True(t, g.MoveDown())
	require.True(t, g.MoveRight())
	clk.settle()

	r := &recorder{}
	g.Draw(r, mgl32.Ident4(), textureMap{})
	require.Len(t, r.quads, 4)

	got := r.quads[3].origin()
	assert.InDelta(t, 5, got.Z(), 1e-5)
	assert.InDelta(t, (Margin/2-Margin/4)*(1-Margin), got.Y(), 1e-5)
	assert.InDelta(t, (Margin/2-Margin/4)*(1-Margin)*Aspect, got.X(), 1e-5)

	// the first row now sits one unit above the origin
	assert.InDelta(t, -1+Margin/2*(1-Margin), r.quads[0].origin().Y(), 1e-5)
}

func TestDraw_ProjectionApplied(t *testing.T) {
	clk := newFakeClock()
	g := newTestGrid(clk, 1)
	clk.settle()

	r := &recorder{}
	projection := mgl32.Translate3D(10, 20, 0)
	g.Draw(r, projection, textureMap{})

	require.Len(t, r.quads, 1)
	got := r.quads[0].origin()
	assert.InDelta(t, 10+(Margin/2-Margin/4)*(1-Margin)*Aspect, got.X(), 1e-5)
	assert.InDelta(t, 20+(Margin/2-Margin/4)*(1-Margin), got.Y(), 1e-5)
}
