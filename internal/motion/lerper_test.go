package motion

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// translateY reads the y translation component of a column-major transform
func translateY(m mgl32.Mat4) float32 { return m[13] }

func TestNewLerper_StartsIdleAtIdentity(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(DefaultDuration, clk.Now)

	assert.False(t, l.IsActive())
	assert.True(t, l.IsDone())
	assert.Equal(t, mgl32.Ident4(), l.Sample())
}

func TestArm_ConvergesToTarget(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(200*time.Millisecond, clk.Now)
	target := mgl32.Translate3D(0, -1, 0)

	pre := l.Sample()
	l.Arm(target)
	require.True(t, l.IsActive())

	clk.Advance(time.Millisecond)
	first := translateY(l.Sample())
	assert.Less(t, first, translateY(pre))
	assert.Greater(t, first, translateY(target))

	clk.Advance(49 * time.Millisecond)
	assert.InDelta(t, -0.25, translateY(l.Sample()), 1e-5)

	clk.Advance(150 * time.Millisecond)
	assert.False(t, l.IsActive(), "transition should end exactly at its duration")
	assert.Equal(t, target, l.Sample())

	clk.Advance(time.Hour)
	assert.Equal(t, target, l.Sample())
	assert.Equal(t, target, l.Sample(), "sampling must be idempotent")
}

func TestArm_InterruptedTransitionDoesNotJump(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(200*time.Millisecond, clk.Now)

	l.Arm(mgl32.Translate3D(4, 0, 0))
	clk.Advance(100 * time.Millisecond)
	mid := l.Sample()
	require.InDelta(t, 2, mid[12], 1e-5)

	l.Arm(mgl32.Translate3D(-4, 0, 0))
	assert.Equal(t, mid, l.Begin())
	assert.Equal(t, mid, l.Sample())

	clk.Advance(100 * time.Millisecond)
	assert.InDelta(t, -1, l.Sample()[12], 1e-5)
}

func TestArm_SameTargetStaysPut(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(200*time.Millisecond, clk.Now)

	l.Arm(mgl32.Ident4())
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, mgl32.Ident4(), l.Sample())
}

func TestApply_ComposesWithTarget(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(200*time.Millisecond, clk.Now)

	l.Arm(mgl32.Translate3D(1, 0, 0))
	l.Apply(mgl32.Translate3D(1, 0, 0))
	clk.Advance(time.Second)

	assert.True(t, l.Sample().ApproxEqual(mgl32.Translate3D(2, 0, 0)))
}

func TestSetAndReset(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(200*time.Millisecond, clk.Now)

	begin := mgl32.Scale3D(2, 2, 1)
	end := mgl32.Scale3D(4, 4, 1)
	l.Set(begin, end)
	assert.Equal(t, begin, l.Sample())
	assert.True(t, l.IsActive())

	l.Reset()
	assert.False(t, l.IsActive())
	assert.Equal(t, mgl32.Ident4(), l.Sample())
	assert.Equal(t, mgl32.Ident4(), l.Target())
}

func TestZeroDuration_CompletesImmediately(t *testing.T) {
	clk := newFakeClock()
	l := NewLerper(0, clk.Now)
	target := mgl32.Translate3D(3, 3, 0)

	l.Arm(target)
	assert.False(t, l.IsActive())
	assert.Equal(t, target, l.Sample())
	assert.Equal(t, float32(1), l.Progress())
}

func TestNewLerper_DefaultsToWallClock(t *testing.T) {
	l := NewLerper(time.Hour, nil)
	l.Arm(mgl32.Translate3D(1, 0, 0))
	assert.True(t, l.IsActive())
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{7, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.in), "Clamp(%v)", tt.in)
	}
}

func TestLerp_ClampsProgress(t *testing.T) {
	a := mgl32.Ident4()
	b := mgl32.Translate3D(10, 0, 0)

	assert.Equal(t, a, Lerp(a, b, -3))
	assert.InDelta(t, 5, Lerp(a, b, 0.5)[12], 1e-6)
	assert.InDelta(t, 10, Lerp(a, b, 9)[12], 1e-6)
}
