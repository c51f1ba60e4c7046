package overlay

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gogpu/overlay/internal/imageio"
)

// DefaultTextureSize is the fallback dimension used when an image file's
// header cannot be read. The load proceeds at this size rather than failing.
const DefaultTextureSize = 256

// Texture cache errors. These are logged rather than returned across the
// public Load boundary, which reports failure as an absent record.
var (
	// ErrImageNotFound is recorded when the image file does not exist.
	ErrImageNotFound = errors.New("overlay: image file not found")

	// ErrTextureSizeMismatch is recorded when the backend allocates a
	// texture at a different size than the requested padded size.
	ErrTextureSizeMismatch = errors.New("overlay: allocated texture size differs from requested")
)

// TextureRecord pairs a loaded backend texture with its allocated
// dimensions. The dimensions are the padded, power-of-two sizes actually
// backing the resource, not the original image dimensions.
//
// Records are exclusively owned by the TextureCache that created them.
// Holders of a record must re-validate it against the cache before use;
// after an Unload or Clear the record is stale and its texture destroyed.
type TextureRecord struct {
	path       string
	texture    Texture
	width      int
	height     int
	generation uint64
}

// Path returns the normalized cache key for this record.
func (r *TextureRecord) Path() string { return r.path }

// Width returns the allocated (padded) texture width.
func (r *TextureRecord) Width() int { return r.width }

// Height returns the allocated (padded) texture height.
func (r *TextureRecord) Height() int { return r.height }

// TextureCache loads image files into backend textures keyed by normalized
// path. At most one record exists per path; repeated loads of the same path
// return the cached record without touching the backend.
//
// The cache owns every texture it creates. Unload, Clear, and session
// shutdown destroy the backing resources; draw items keep non-owning
// references and must call Valid before every use.
type TextureCache struct {
	backend     Backend
	records     map[string]*TextureRecord
	generation  uint64
	defaultSize int
}

// newTextureCache creates an empty cache. The backend is attached later by
// Session.Init; Load fails (absent) while no backend is attached.
func newTextureCache(defaultSize int) *TextureCache {
	if defaultSize <= 0 {
		defaultSize = DefaultTextureSize
	}
	return &TextureCache{
		records:     make(map[string]*TextureRecord),
		defaultSize: defaultSize,
	}
}

// normalizePath produces the cache key for a file path. Cleaning plus
// slash normalization makes "dir//a.png" and "dir/a.png" share one entry
// across platforms.
func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// Load returns the texture record for the image file at path, loading and
// uploading it on first use.
//
// The load pipeline:
//  1. Return the cached record if the path was loaded before.
//  2. Verify the file exists; a missing file is logged and reported absent.
//  3. Probe the image header for its dimensions; a probe failure degrades
//     to the configured default size instead of failing the load.
//  4. Pad each dimension independently to the next power of two and ask the
//     backend to create the texture at exactly that size, stretching the
//     source pixels to fill it.
//  5. Verify the backend allocated exactly the requested size; disagreement
//     destroys the texture and fails the load.
//
// Every failure mode returns (nil, false) with a logged diagnostic; Load
// never panics across the public boundary.
func (c *TextureCache) Load(path string) (*TextureRecord, bool) {
	key := normalizePath(path)
	if rec, ok := c.records[key]; ok {
		return rec, true
	}

	if c.backend == nil {
		Logger().Warn("texture load before session init", "path", key)
		return nil, false
	}

	if _, err := os.Stat(path); err != nil {
		Logger().Warn("image file not found", "path", key, "err", errors.Join(ErrImageNotFound, err))
		return nil, false
	}

	w, h, err := imageio.Probe(path)
	if err != nil {
		// Header unreadable: fall back to a fixed size so the load can
		// still succeed against whatever the backend's decoder accepts.
		Logger().Debug("image header probe failed, using default size",
			"path", key, "size", c.defaultSize, "err", err)
		w, h = c.defaultSize, c.defaultSize
	}

	pw, ph := NextPow2(w), NextPow2(h)
	tex, err := c.backend.CreateTexture(path, pw, ph)
	if err != nil {
		Logger().Warn("texture create failed", "path", key, "err", err)
		return nil, false
	}

	if tex.Width() != pw || tex.Height() != ph {
		Logger().Warn("texture allocation size mismatch",
			"path", key,
			"requested_w", pw, "requested_h", ph,
			"allocated_w", tex.Width(), "allocated_h", tex.Height(),
			"err", ErrTextureSizeMismatch)
		tex.Destroy()
		return nil, false
	}

	c.generation++
	rec := &TextureRecord{
		path:       key,
		texture:    tex,
		width:      pw,
		height:     ph,
		generation: c.generation,
	}
	c.records[key] = rec

	Logger().Debug("texture loaded",
		"path", key, "origin_w", w, "origin_h", h, "padded_w", pw, "padded_h", ph)
	return rec, true
}

// Unload removes one entry and destroys its backing texture.
// Unknown paths are a no-op.
func (c *TextureCache) Unload(path string) {
	key := normalizePath(path)
	rec, ok := c.records[key]
	if !ok {
		return
	}
	delete(c.records, key)
	rec.texture.Destroy()
}

// Clear removes all entries and destroys their backing textures.
func (c *TextureCache) Clear() {
	for key, rec := range c.records {
		delete(c.records, key)
		rec.texture.Destroy()
	}
}

// Len returns the number of cached records.
func (c *TextureCache) Len() int {
	return len(c.records)
}

// Valid reports whether rec is still the live record for its path. A record
// goes stale when its path is unloaded, the cache is cleared, or the path is
// reloaded into a fresh record. Stale records must never be drawn.
func (c *TextureCache) Valid(rec *TextureRecord) bool {
	if rec == nil {
		return false
	}
	return c.records[rec.path] == rec
}
