package overlay

// Handle identifies one draw item in a DrawQueue. Handles are assigned
// monotonically and never reused while any item is live, so a destroyed
// handle can be detected rather than silently addressing a newer item.
type Handle uint64

// drawItem is the mutable retained state behind one sprite. It is only
// reachable through DrawQueue methods; callers observe it via Item snapshots.
type drawItem struct {
	x, y int
	w, h int

	// hasSize records whether SetSize has been called, so the scale can be
	// recomputed when a texture is bound after the size (order
	// independence between SetSize and SetTexture).
	hasSize bool

	scaleX, scaleY float64

	src     Rect
	color   Color
	visible bool

	// tex is a non-owning reference into the texture cache. nil means
	// untextured; a non-nil reference may still be stale and is
	// re-validated against the cache before every draw.
	tex *TextureRecord
}

// newDrawItem returns the default item: invisible, untextured, full scale,
// opaque white.
func newDrawItem() *drawItem {
	return &drawItem{
		scaleX: 1.0,
		scaleY: 1.0,
		color:  White,
	}
}

// recomputeScale derives the scale factors from the requested size and the
// bound texture's allocated (padded) dimensions.
func (it *drawItem) recomputeScale() {
	if it.tex == nil || !it.hasSize {
		return
	}
	if it.tex.Width() > 0 {
		it.scaleX = float64(it.w) / float64(it.tex.Width())
	}
	if it.tex.Height() > 0 {
		it.scaleY = float64(it.h) / float64(it.tex.Height())
	}
}

// Item is an immutable snapshot of one draw item, as returned by
// DrawQueue.Item.
type Item struct {
	// X, Y is the integer screen position.
	X, Y int

	// Width, Height is the requested on-screen size. For an item whose
	// size was never set, this is the bound texture's allocated size, or
	// zero while untextured.
	Width, Height int

	// ScaleX, ScaleY are the derived scale factors against the bound
	// texture's allocated dimensions.
	ScaleX, ScaleY float64

	// Source is the sampled sub-rectangle in the bound texture's pixel
	// space. Zero while untextured.
	Source Rect

	// Color is the packed ARGB modulation color.
	Color Color

	// Visible reports whether the item participates in the render pass.
	Visible bool

	// TexturePath is the normalized path of the bound texture, or empty
	// while untextured.
	TexturePath string

	// Textured reports whether a texture reference is currently bound.
	// The reference may still be stale; the renderer re-validates it.
	Textured bool
}

// snapshot builds the exported view of an item.
func (it *drawItem) snapshot() Item {
	s := Item{
		X:       it.x,
		Y:       it.y,
		Width:   it.w,
		Height:  it.h,
		ScaleX:  it.scaleX,
		ScaleY:  it.scaleY,
		Source:  it.src,
		Color:   it.color,
		Visible: it.visible,
	}
	if it.tex != nil {
		s.TexturePath = it.tex.Path()
		s.Textured = true
	}
	return s
}
