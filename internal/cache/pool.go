package cache

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"sort"

	// Registered decoders for downloaded tiles
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/mmcdole/marquee/internal/domain"
)

// Uploader converts a decoded image into the renderer's native texture
type Uploader interface {
	Upload(img image.Image) (domain.Texture, error)
}

// UploaderFunc adapts a function to the Uploader interface
type UploaderFunc func(img image.Image) (domain.Texture, error)

// Upload calls f(img)
func (f UploaderFunc) Upload(img image.Image) (domain.Texture, error) {
	return f(img)
}

// ImageTexture keeps the decoded image as its own texture
type ImageTexture struct {
	image.Image
}

// Size returns the image dimensions
func (t ImageTexture) Size() (int, int) {
	b := t.Bounds()
	return b.Dx(), b.Dy()
}

// ImageUploader stores decoded images unchanged
var ImageUploader = UploaderFunc(func(img image.Image) (domain.Texture, error) {
	return ImageTexture{Image: img}, nil
})

// Pool maps image URLs to decoded textures for the whole session. Entries
// are only added, never evicted.
type Pool struct {
	uploader Uploader
	textures map[string]domain.Texture
	logger   *slog.Logger
}

// NewPool creates an empty pool. A nil uploader keeps decoded images as-is.
func NewPool(uploader Uploader, logger *slog.Logger) *Pool {
	if uploader == nil {
		uploader = ImageUploader
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		uploader: uploader,
		textures: make(map[string]domain.Texture),
		logger:   logger,
	}
}

// Handle decodes a downloaded image and stores its texture under the URL,
// replacing any previous entry. On failure the pool is left unchanged and
// the tile keeps drawing its placeholder.
func (p *Pool) Handle(ev ImageReady) error {
	img, format, err := image.Decode(bytes.NewReader(ev.Bytes))
	if err != nil {
		p.logger.Warn("failed to decode texture", "url", ev.URL, "bytes", len(ev.Bytes), "error", err)
		return fmt.Errorf("%w: %s: %w", domain.ErrDecodeFailed, ev.URL, err)
	}

	tex, err := p.uploader.Upload(img)
	if err != nil {
		p.logger.Warn("failed to upload texture", "url", ev.URL, "error", err)
		return fmt.Errorf("upload %s: %w", ev.URL, err)
	}

	p.textures[ev.URL] = tex
	p.logger.Debug("texture ready", "url", ev.URL, "format", format)
	return nil
}

// Get returns the texture for url. The handle is only borrowed; callers must
// not keep it past the current draw.
func (p *Pool) Get(url string) (domain.Texture, bool) {
	tex, ok := p.textures[url]
	return tex, ok
}

// Len returns the number of textures held
func (p *Pool) Len() int {
	return len(p.textures)
}

// URLs returns the cached URLs in sorted order
func (p *Pool) URLs() []string {
	urls := make([]string, 0, len(p.textures))
	for url := range p.textures {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
