package overlay

import (
	"math"
	"slices"
)

// DrawQueue is a handle-indexed collection of retained draw items. Items are
// created with defaults, mutated through named setters, and destroyed
// explicitly; the renderer consumes the queue each frame.
//
// The queue holds non-owning references into its session's texture cache.
// All methods are no-ops (or return absent) for unknown handles, so a caller
// holding a destroyed handle cannot corrupt live items.
type DrawQueue struct {
	cache *TextureCache
	items map[Handle]*drawItem
	next  Handle
}

// newDrawQueue creates an empty queue resolving textures through cache.
func newDrawQueue(cache *TextureCache) *DrawQueue {
	return &DrawQueue{
		cache: cache,
		items: make(map[Handle]*drawItem),
	}
}

// Create allocates a new draw item and returns its handle. The item starts
// invisible, untextured, at scale 1.0, opaque white.
func (q *DrawQueue) Create() Handle {
	q.next++
	h := q.next
	q.items[h] = newDrawItem()
	return h
}

// Destroy removes the item. Destroying an unknown handle is a no-op.
func (q *DrawQueue) Destroy(h Handle) {
	delete(q.items, h)
}

// Len returns the number of live items.
func (q *DrawQueue) Len() int {
	return len(q.items)
}

// Clear removes all items. Handles keep increasing monotonically, so handles
// destroyed by Clear are never reissued.
func (q *DrawQueue) Clear() {
	clear(q.items)
}

// SetTexture binds the image at path to the item, loading it through the
// texture cache as needed. On success the source rectangle resets to the
// texture's full (padded) bounds and the scale is recomputed against the new
// texture. On load failure any existing binding is cleared so the item is
// skipped at render time until corrected.
//
// Returns false for an unknown handle or a failed load.
func (q *DrawQueue) SetTexture(h Handle, path string) bool {
	it, ok := q.items[h]
	if !ok {
		return false
	}

	rec, ok := q.cache.Load(path)
	if !ok {
		it.tex = nil
		it.src = Rect{}
		return false
	}

	it.tex = rec
	it.src = Rect{X: 0, Y: 0, W: rec.Width(), H: rec.Height()}
	if it.hasSize {
		it.recomputeScale()
	} else {
		// No explicit size yet: the item renders at the texture's
		// allocated size at scale 1.0.
		it.w = rec.Width()
		it.h = rec.Height()
		it.scaleX = 1.0
		it.scaleY = 1.0
	}
	return true
}

// SetPosition places the item's top-left corner. Both coordinates are
// floored to integers: fractional pixel placement produces visible seams on
// this rendering path, so sub-pixel values are disallowed.
func (q *DrawQueue) SetPosition(h Handle, x, y float64) {
	it, ok := q.items[h]
	if !ok {
		return
	}
	it.x = int(math.Floor(x))
	it.y = int(math.Floor(y))
}

// SetSize sets the item's on-screen size, floored to integers, and
// recomputes the scale against the currently bound texture. If no texture is
// bound yet, the size is recorded and the scale recomputed when one is: the
// final scale is the same whichever of SetSize and SetTexture ran first.
func (q *DrawQueue) SetSize(h Handle, w, hgt float64) {
	it, ok := q.items[h]
	if !ok {
		return
	}
	it.w = int(math.Floor(w))
	it.h = int(math.Floor(hgt))
	it.hasSize = true
	it.recomputeScale()
}

// SetSourceRect sets the sampled sub-rectangle in the bound texture's pixel
// space. A non-positive width or height defaults to the bound texture's full
// (padded) extent on that axis. No-op while untextured.
func (q *DrawQueue) SetSourceRect(h Handle, x, y, w, hgt int) {
	it, ok := q.items[h]
	if !ok || it.tex == nil {
		return
	}
	if w <= 0 {
		w = it.tex.Width()
	}
	if hgt <= 0 {
		hgt = it.tex.Height()
	}
	it.src = Rect{X: x, Y: y, W: w, H: hgt}
}

// SetColor sets the packed ARGB modulation color, alpha in the top byte.
func (q *DrawQueue) SetColor(h Handle, c Color) {
	if it, ok := q.items[h]; ok {
		it.color = c
	}
}

// SetColorRGBA sets the modulation color from separate components.
func (q *DrawQueue) SetColorRGBA(h Handle, r, g, b, a uint8) {
	if it, ok := q.items[h]; ok {
		it.color = ARGB(a, r, g, b)
	}
}

// SetAlpha replaces only the alpha byte, preserving the RGB bytes.
func (q *DrawQueue) SetAlpha(h Handle, a uint8) {
	if it, ok := q.items[h]; ok {
		it.color = it.color.WithAlpha(a)
	}
}

// SetVisible toggles whether the item participates in the render pass.
func (q *DrawQueue) SetVisible(h Handle, visible bool) {
	if it, ok := q.items[h]; ok {
		it.visible = visible
	}
}

// Item returns a snapshot of the item's current state, or absent for an
// unknown handle.
func (q *DrawQueue) Item(h Handle) (Item, bool) {
	it, ok := q.items[h]
	if !ok {
		return Item{}, false
	}
	return it.snapshot(), true
}

// handlesInOrder returns the live handles in ascending order. The render
// pass draws in this order so stacking is deterministic (creation order);
// there is still no depth model.
func (q *DrawQueue) handlesInOrder() []Handle {
	hs := make([]Handle, 0, len(q.items))
	for h := range q.items {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}
