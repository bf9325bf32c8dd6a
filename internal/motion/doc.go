// Package motion provides time-boxed transitions between affine transforms.
//
// A Lerper is polled once per frame rather than driven by events: callers arm
// it with a target, then sample the interpolated transform while drawing and
// ask whether the transition is still running before starting another one.
package motion
