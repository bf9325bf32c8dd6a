// Package grid implements the catalog's selection model: a vertical stack of
// rows, each a horizontal strip of tiles, with one selected tile at a time.
//
// Moving between rows and between tiles is animated. A row or grid movement
// is refused while that axis is still animating, so the logical selection and
// what is on screen never drift apart. Per-tile highlight animations are
// purely cosmetic and restart whenever the selection changes.
//
// Everything here is owned by the control loop and is not safe for
// concurrent use.
package grid
