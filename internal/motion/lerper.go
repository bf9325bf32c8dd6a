package motion

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDuration is the length of every grid transition
const DefaultDuration = 200 * time.Millisecond

// Clock returns the current time. Lerpers read it on every query.
type Clock func() time.Time

// Lerper interpolates between two transforms over a fixed duration.
//
// The interpolated value is begin at the start time, end once the duration
// has elapsed, and a linear blend in between. Sampling after completion
// always yields end exactly.
type Lerper struct {
	begin    mgl32.Mat4
	end      mgl32.Mat4
	start    time.Time
	duration time.Duration
	clock    Clock
}

// NewLerper creates an idle lerper resting at the identity transform.
// A nil clock uses time.Now.
func NewLerper(duration time.Duration, clock Clock) *Lerper {
	if clock == nil {
		clock = time.Now
	}
	return &Lerper{
		begin:    mgl32.Ident4(),
		end:      mgl32.Ident4(),
		start:    clock().Add(-duration),
		duration: duration,
		clock:    clock,
	}
}

// Arm makes target the next transform to move to and restarts the timer.
// The new transition begins at the value currently being displayed, so an
// interrupted transition continues from where it was instead of snapping.
func (l *Lerper) Arm(target mgl32.Mat4) {
	l.begin = l.Sample()
	l.end = target
	l.start = l.clock()
}

// Apply arms the lerper toward its current target composed with xform
func (l *Lerper) Apply(xform mgl32.Mat4) {
	l.Arm(l.end.Mul4(xform))
}

// Set restarts the lerper with explicit endpoints
func (l *Lerper) Set(begin, end mgl32.Mat4) {
	l.begin = begin
	l.end = end
	l.start = l.clock()
}

// Reset returns the lerper to an idle identity transform
func (l *Lerper) Reset() {
	l.begin = mgl32.Ident4()
	l.end = mgl32.Ident4()
	l.start = l.clock().Add(-l.duration)
}

// Sample returns the interpolated transform for the current time.
// It has no side effects and may be called any number of times.
func (l *Lerper) Sample() mgl32.Mat4 {
	p := l.Progress()
	if p >= 1 {
		return l.end
	}
	return Lerp(l.begin, l.end, p)
}

// Progress returns how far the transition has run, in [0,1]
func (l *Lerper) Progress() float32 {
	if l.duration <= 0 {
		return 1
	}
	elapsed := l.clock().Sub(l.start)
	return Clamp(float32(elapsed) / float32(l.duration))
}

// IsActive reports whether the transition is still running
func (l *Lerper) IsActive() bool {
	return l.clock().Before(l.start.Add(l.duration))
}

// IsDone reports whether the transition has finished
func (l *Lerper) IsDone() bool {
	return !l.IsActive()
}

// Target returns the transform the lerper is moving toward
func (l *Lerper) Target() mgl32.Mat4 {
	return l.end
}

// Begin returns the transform the current transition started from
func (l *Lerper) Begin() mgl32.Mat4 {
	return l.begin
}

// Duration returns the transition length
func (l *Lerper) Duration() time.Duration {
	return l.duration
}
