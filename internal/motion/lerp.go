package motion

import "github.com/go-gl/mathgl/mgl32"

// Lerp linearly blends two transforms element-wise. t is clamped to [0,1].
func Lerp(a, b mgl32.Mat4, t float32) mgl32.Mat4 {
	t = Clamp(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp restricts v to the unit interval
func Clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
