package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// fakeTexture is a backend texture stub with controllable dimensions.
type fakeTexture struct {
	w, h      int
	destroyed bool
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Destroy()    { t.destroyed = true }

// fakeBackend records backend calls and fails on demand.
type fakeBackend struct {
	name string

	initErr   error
	beginErr  error
	endErr    error
	createErr error

	// allocW/allocH override the allocated texture size when > 0, to
	// simulate a backend that disagrees with the requested padding.
	allocW, allocH int

	// failDraw makes Draw fail for specific textures.
	failDraw map[Texture]error

	// onDraw, when set, runs before each recorded draw.
	onDraw func(cmd DrawCommand)

	initialized bool
	createCalls int
	begins      int
	ends        int
	closes      int
	draws       []DrawCommand
	textures    []*fakeTexture
}

var _ Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{name: "fake"}
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.initialized = true
	return nil
}

func (b *fakeBackend) Close() {
	b.closes++
	b.initialized = false
}

func (b *fakeBackend) CreateTexture(path string, width, height int) (Texture, error) {
	b.createCalls++
	if b.createErr != nil {
		return nil, b.createErr
	}
	w, h := width, height
	if b.allocW > 0 {
		w = b.allocW
	}
	if b.allocH > 0 {
		h = b.allocH
	}
	t := &fakeTexture{w: w, h: h}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) BeginBatch() error {
	if b.beginErr != nil {
		return b.beginErr
	}
	b.begins++
	return nil
}

func (b *fakeBackend) Draw(cmd DrawCommand) error {
	if err, ok := b.failDraw[cmd.Texture]; ok {
		return err
	}
	if b.onDraw != nil {
		b.onDraw(cmd)
	}
	b.draws = append(b.draws, cmd)
	return nil
}

func (b *fakeBackend) EndBatch() error {
	if b.endErr != nil {
		return b.endErr
	}
	b.ends++
	return nil
}

// writeTestPNG writes a solid-color PNG of the given size and returns its
// path.
func writeTestPNG(t *testing.T, dir, name string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

// writeGarbageFile writes a file that exists but has no decodable image
// header.
func writeGarbageFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// newTestSession builds an initialized session on a fake backend.
func newTestSession(t *testing.T) (*Session, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	s := NewSession(WithBackend(b))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s, b
}

// mustLoad loads a path through the session's cache or fails the test.
func mustLoad(t *testing.T, s *Session, path string) *TextureRecord {
	t.Helper()
	rec, ok := s.Textures().Load(path)
	if !ok {
		t.Fatalf("Load(%s) failed", path)
	}
	return rec
}

var errBoom = fmt.Errorf("boom")
