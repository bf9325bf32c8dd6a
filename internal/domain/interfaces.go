package domain

// Texture is a decoded image converted to the renderer's native form.
// Handles are owned by the texture pool; draw code only borrows them for
// the duration of a draw call.
type Texture interface {
	// Size returns the texture dimensions in texels
	Size() (width, height int)
}
