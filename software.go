package overlay

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/overlay/internal/imageio"
)

// Default frame size for registry-constructed software backends. Sessions
// that need a different target should construct one via NewSoftwareBackend
// and inject it with WithBackend.
const (
	defaultSoftwareWidth  = 1280
	defaultSoftwareHeight = 720
)

// ErrTextureDestroyed is returned when drawing with a destroyed texture.
var ErrTextureDestroyed = errors.New("overlay: texture has been destroyed")

func init() {
	Register(BackendSoftware, func() Backend {
		return NewSoftwareBackend(defaultSoftwareWidth, defaultSoftwareHeight)
	})
}

// SoftwareBackend is a CPU sprite backend rendering into an in-memory RGBA
// frame. It is always available and serves as the registry fallback when no
// GPU backend is importable, and as the deterministic target for tests and
// offline rendering.
type SoftwareBackend struct {
	width, height int
	frame         *image.RGBA
	initialized   bool
	inBatch       bool
}

// NewSoftwareBackend creates a software backend targeting a width x height
// frame.
func NewSoftwareBackend(width, height int) *SoftwareBackend {
	return &SoftwareBackend{width: width, height: height}
}

// Name returns "software".
func (b *SoftwareBackend) Name() string { return BackendSoftware }

// Init allocates the target frame. Idempotent.
func (b *SoftwareBackend) Init() error {
	if b.initialized {
		return nil
	}
	if b.width <= 0 || b.height <= 0 {
		return fmt.Errorf("overlay: invalid software frame size %dx%d", b.width, b.height)
	}
	b.frame = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	b.initialized = true
	return nil
}

// Close releases the frame. Safe to call repeatedly.
func (b *SoftwareBackend) Close() {
	b.frame = nil
	b.initialized = false
	b.inBatch = false
}

// Frame returns the render target, valid between Init and Close. The
// returned image is overwritten by subsequent batches.
func (b *SoftwareBackend) Frame() *image.RGBA {
	return b.frame
}

// ClearFrame fills the whole frame with c. The batch itself is
// load-preserving, so hosts that want a fresh frame call this before
// rendering.
func (b *SoftwareBackend) ClearFrame(c Color) {
	if b.frame == nil {
		return
	}
	r, g, bl, a := c.Red(), c.Green(), c.Blue(), c.Alpha()
	px := b.frame.Pix
	for i := 0; i < len(px); i += 4 {
		px[i] = r
		px[i+1] = g
		px[i+2] = bl
		px[i+3] = a
	}
}

// softwareTexture is an RGBA image held at its padded size.
type softwareTexture struct {
	rgba      *image.RGBA
	destroyed bool
}

func (t *softwareTexture) Width() int  { return t.rgba.Bounds().Dx() }
func (t *softwareTexture) Height() int { return t.rgba.Bounds().Dy() }
func (t *softwareTexture) Destroy()    { t.destroyed = true }

// CreateTexture decodes the file at path and stretches it to exactly
// width x height.
func (b *SoftwareBackend) CreateTexture(path string, width, height int) (Texture, error) {
	if !b.initialized {
		return nil, ErrBackendNotInitialized
	}
	rgba, err := imageio.DecodeStretched(path, width, height)
	if err != nil {
		return nil, err
	}
	return &softwareTexture{rgba: rgba}, nil
}

// BeginBatch opens the frame for sprite draws.
func (b *SoftwareBackend) BeginBatch() error {
	if !b.initialized {
		return ErrBackendNotInitialized
	}
	if b.inBatch {
		return ErrBatchAlreadyOpen
	}
	b.inBatch = true
	return nil
}

// Draw composites one scaled, tinted sprite quad over the frame.
func (b *SoftwareBackend) Draw(cmd DrawCommand) error {
	if !b.inBatch {
		return ErrBatchNotOpen
	}
	if cmd.Texture == nil {
		return ErrNilTexture
	}
	tex, ok := cmd.Texture.(*softwareTexture)
	if !ok {
		return fmt.Errorf("overlay: foreign texture %T for software backend", cmd.Texture)
	}
	if tex.destroyed {
		return ErrTextureDestroyed
	}

	srcRect := image.Rect(cmd.Source.X, cmd.Source.Y,
		cmd.Source.X+cmd.Source.W, cmd.Source.Y+cmd.Source.H).
		Intersect(tex.rgba.Bounds())
	if srcRect.Empty() {
		return fmt.Errorf("overlay: source rect %+v outside texture bounds", cmd.Source)
	}

	dstW := int(float64(srcRect.Dx()) * cmd.ScaleX)
	dstH := int(float64(srcRect.Dy()) * cmd.ScaleY)
	if dstW <= 0 || dstH <= 0 {
		return nil
	}

	quad := imageio.Stretch(tex.rgba.SubImage(srcRect), dstW, dstH)
	b.compositeTinted(quad, cmd.X, cmd.Y, cmd.Color)
	return nil
}

// EndBatch closes the batch. The software path draws eagerly, so nothing
// is submitted here.
func (b *SoftwareBackend) EndBatch() error {
	if !b.inBatch {
		return ErrBatchNotOpen
	}
	b.inBatch = false
	return nil
}

// compositeTinted alpha-blends quad over the frame at (dx, dy), modulating
// each pixel by the packed ARGB tint.
func (b *SoftwareBackend) compositeTinted(quad *image.RGBA, dx, dy int, tint Color) {
	tr := uint32(tint.Red())
	tg := uint32(tint.Green())
	tb := uint32(tint.Blue())
	ta := uint32(tint.Alpha())

	bounds := quad.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		fy := dy + y
		if fy < 0 || fy >= b.height {
			continue
		}
		for x := 0; x < bounds.Dx(); x++ {
			fx := dx + x
			if fx < 0 || fx >= b.width {
				continue
			}

			si := quad.PixOffset(x, y)
			sr := uint32(quad.Pix[si]) * tr / 255
			sg := uint32(quad.Pix[si+1]) * tg / 255
			sb := uint32(quad.Pix[si+2]) * tb / 255
			sa := uint32(quad.Pix[si+3]) * ta / 255
			if sa == 0 {
				continue
			}

			// Straight-alpha source-over.
			di := b.frame.PixOffset(fx, fy)
			inv := 255 - sa
			b.frame.Pix[di] = uint8((sr*sa + uint32(b.frame.Pix[di])*inv) / 255)
			b.frame.Pix[di+1] = uint8((sg*sa + uint32(b.frame.Pix[di+1])*inv) / 255)
			b.frame.Pix[di+2] = uint8((sb*sa + uint32(b.frame.Pix[di+2])*inv) / 255)
			b.frame.Pix[di+3] = uint8(sa + uint32(b.frame.Pix[di+3])*inv/255)
		}
	}
}
