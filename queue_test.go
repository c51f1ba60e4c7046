package overlay

import (
	"image/color"
	"testing"
)

func TestDrawQueue_CreateDefaults(t *testing.T) {
	s, _ := newTestSession(t)

	h := s.Sprites().Create()
	item, ok := s.Sprites().Item(h)
	if !ok {
		t.Fatal("Item() absent for freshly created handle")
	}
	if item.Visible {
		t.Error("new item should be invisible")
	}
	if item.Textured {
		t.Error("new item should be untextured")
	}
	if item.ScaleX != 1.0 || item.ScaleY != 1.0 {
		t.Errorf("default scale = (%v, %v), want (1, 1)", item.ScaleX, item.ScaleY)
	}
	if item.Color != White {
		t.Errorf("default color = %v, want opaque white", item.Color)
	}
}

func TestDrawQueue_HandlesUnique(t *testing.T) {
	s, _ := newTestSession(t)

	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := s.Sprites().Create()
		if seen[h] {
			t.Fatalf("handle %d reissued", h)
		}
		seen[h] = true
	}

	// Handles are not reused after destroy, even when the live set shrinks.
	var last Handle
	for h := range seen {
		s.Sprites().Destroy(h)
		if h > last {
			last = h
		}
	}
	if h := s.Sprites().Create(); h <= last {
		t.Errorf("handle %d reissued after destroy (last was %d)", h, last)
	}
}

func TestDrawQueue_DestroyRemovesItem(t *testing.T) {
	s, _ := newTestSession(t)

	h := s.Sprites().Create()
	s.Sprites().Destroy(h)
	if _, ok := s.Sprites().Item(h); ok {
		t.Error("Item() should be absent after Destroy")
	}

	// Destroying unknown handles is a no-op.
	s.Sprites().Destroy(h)
	s.Sprites().Destroy(Handle(9999))
}

func TestDrawQueue_SettersIgnoreUnknownHandle(t *testing.T) {
	s, _ := newTestSession(t)

	h := Handle(42)
	s.Sprites().SetPosition(h, 1, 2)
	s.Sprites().SetSize(h, 3, 4)
	s.Sprites().SetColor(h, White)
	s.Sprites().SetAlpha(h, 1)
	s.Sprites().SetVisible(h, true)
	s.Sprites().SetSourceRect(h, 0, 0, 1, 1)
	if s.Sprites().SetTexture(h, "x.png") {
		t.Error("SetTexture on unknown handle should report false")
	}
	if s.Sprites().Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Sprites().Len())
	}
}

func TestDrawQueue_SetPositionFloors(t *testing.T) {
	s, _ := newTestSession(t)

	h := s.Sprites().Create()
	s.Sprites().SetPosition(h, 10.9, -3.2)
	item, _ := s.Sprites().Item(h)
	if item.X != 10 || item.Y != -4 {
		t.Errorf("position = (%d, %d), want (10, -4)", item.X, item.Y)
	}
}

func TestDrawQueue_ScaleOrderIndependence(t *testing.T) {
	// 200x100 image pads to 256x128, so a 100x50 sprite scales by
	// (100/256, 50/128) regardless of call order.
	setup := func(t *testing.T) (*Session, string) {
		s, _ := newTestSession(t)
		path := writeTestPNG(t, t.TempDir(), "sprite.png", 200, 100, color.RGBA{A: 255})
		return s, path
	}
	const wantX = 100.0 / 256.0
	const wantY = 50.0 / 128.0

	t.Run("size then texture", func(t *testing.T) {
		s, path := setup(t)
		h := s.Sprites().Create()
		s.Sprites().SetSize(h, 100, 50)
		if !s.Sprites().SetTexture(h, path) {
			t.Fatal("SetTexture failed")
		}
		item, _ := s.Sprites().Item(h)
		if item.ScaleX != wantX || item.ScaleY != wantY {
			t.Errorf("scale = (%v, %v), want (%v, %v)", item.ScaleX, item.ScaleY, wantX, wantY)
		}
	})

	t.Run("texture then size", func(t *testing.T) {
		s, path := setup(t)
		h := s.Sprites().Create()
		if !s.Sprites().SetTexture(h, path) {
			t.Fatal("SetTexture failed")
		}
		s.Sprites().SetSize(h, 100, 50)
		item, _ := s.Sprites().Item(h)
		if item.ScaleX != wantX || item.ScaleY != wantY {
			t.Errorf("scale = (%v, %v), want (%v, %v)", item.ScaleX, item.ScaleY, wantX, wantY)
		}
	})
}

func TestDrawQueue_SetTextureDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	path := writeTestPNG(t, t.TempDir(), "sprite.png", 60, 60, color.RGBA{A: 255})

	h := s.Sprites().Create()
	if !s.Sprites().SetTexture(h, path) {
		t.Fatal("SetTexture failed")
	}
	item, _ := s.Sprites().Item(h)

	// Source rect resets to the full padded bounds.
	if item.Source != (Rect{X: 0, Y: 0, W: 64, H: 64}) {
		t.Errorf("source = %+v, want full 64x64 bounds", item.Source)
	}
	// Without an explicit size the item renders at the allocated size.
	if item.Width != 64 || item.Height != 64 {
		t.Errorf("size = %dx%d, want 64x64", item.Width, item.Height)
	}
	if item.ScaleX != 1.0 || item.ScaleY != 1.0 {
		t.Errorf("scale = (%v, %v), want (1, 1)", item.ScaleX, item.ScaleY)
	}
	if item.TexturePath == "" || !item.Textured {
		t.Error("item should report its bound texture")
	}
}

func TestDrawQueue_SetTextureFailureClearsBinding(t *testing.T) {
	s, _ := newTestSession(t)
	path := writeTestPNG(t, t.TempDir(), "sprite.png", 16, 16, color.RGBA{A: 255})

	h := s.Sprites().Create()
	if !s.Sprites().SetTexture(h, path) {
		t.Fatal("SetTexture failed")
	}
	if s.Sprites().SetTexture(h, "missing.png") {
		t.Error("SetTexture on a missing file should report false")
	}

	item, _ := s.Sprites().Item(h)
	if item.Textured {
		t.Error("failed SetTexture must clear the previous binding")
	}
}

func TestDrawQueue_SetSourceRect(t *testing.T) {
	s, _ := newTestSession(t)
	path := writeTestPNG(t, t.TempDir(), "sprite.png", 128, 128, color.RGBA{A: 255})

	h := s.Sprites().Create()
	if !s.Sprites().SetTexture(h, path) {
		t.Fatal("SetTexture failed")
	}

	s.Sprites().SetSourceRect(h, 10, 20, 30, 40)
	item, _ := s.Sprites().Item(h)
	if item.Source != (Rect{X: 10, Y: 20, W: 30, H: 40}) {
		t.Errorf("source = %+v, want {10 20 30 40}", item.Source)
	}

	// Omitted extents default to the full padded bounds.
	s.Sprites().SetSourceRect(h, 5, 5, 0, 0)
	item, _ = s.Sprites().Item(h)
	if item.Source != (Rect{X: 5, Y: 5, W: 128, H: 128}) {
		t.Errorf("source = %+v, want {5 5 128 128}", item.Source)
	}
}

func TestDrawQueue_ColorAndAlpha(t *testing.T) {
	s, _ := newTestSession(t)
	h := s.Sprites().Create()

	s.Sprites().SetColor(h, Color(0x112233))
	s.Sprites().SetAlpha(h, 0x80)
	item, _ := s.Sprites().Item(h)
	if item.Color != Color(0x80112233) {
		t.Errorf("color = %v, want #80112233", item.Color)
	}

	s.Sprites().SetColorRGBA(h, 1, 2, 3, 4)
	item, _ = s.Sprites().Item(h)
	if item.Color != ARGB(4, 1, 2, 3) {
		t.Errorf("color = %v, want ARGB(4,1,2,3)", item.Color)
	}
}

func TestDrawQueue_Clear(t *testing.T) {
	s, _ := newTestSession(t)

	for i := 0; i < 5; i++ {
		s.Sprites().Create()
	}
	s.Sprites().Clear()
	if s.Sprites().Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Sprites().Len())
	}
}
