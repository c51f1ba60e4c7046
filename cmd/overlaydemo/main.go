// Command overlaydemo renders a sprite overlay to a PNG using the software
// backend.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/overlay"
)

func main() {
	var (
		width  = flag.Int("width", 1280, "frame width")
		height = flag.Int("height", 720, "frame height")
		images = flag.String("images", ".", "directory of sprite images")
		frames = flag.Int("frames", 60, "number of frames to render")
		output = flag.String("output", "overlay.png", "output file for the final frame")
	)
	flag.Parse()

	overlay.SetLogger(slog.Default())

	backend := overlay.NewSoftwareBackend(*width, *height)
	s := overlay.NewSession(overlay.WithBackend(backend))
	if err := s.Init(); err != nil {
		log.Fatalf("session init: %v", err)
	}
	defer s.Shutdown()

	handles := loadSprites(s, *images, *width)
	if len(handles) == 0 {
		log.Fatalf("no loadable images in %s", *images)
	}

	// Drift the sprites a little each frame so the demo exercises the
	// retained-mutation path, not just a static draw.
	for frame := 0; frame < *frames; frame++ {
		for i, h := range handles {
			item, ok := s.Sprites().Item(h)
			if !ok {
				continue
			}
			s.Sprites().SetPosition(h, float64(item.X+1+i%3), float64(item.Y))
			s.Sprites().SetAlpha(h, uint8(128+127*frame / *frames))
		}
		backend.ClearFrame(overlay.ARGB(255, 24, 24, 32))
		stats := s.RenderFrame()
		if frame == 0 {
			log.Printf("frame 0: drawn=%d skipped=%d failed=%d", stats.Drawn, stats.Skipped, stats.Failed)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, backend.Frame()); err != nil {
		log.Fatalf("encode png: %v", err)
	}
	log.Printf("overlay saved to %s (%dx%d, %d sprites)", *output, *width, *height, len(handles))
}

// loadSprites creates one visible 96x96 draw item per loadable image file,
// laid out in a row.
func loadSprites(s *overlay.Session, dir string, frameWidth int) []overlay.Handle {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read %s: %v", dir, err)
	}

	const size = 96
	var handles []overlay.Handle
	x, y := 16, 16
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		h := s.Sprites().Create()
		if !s.Sprites().SetTexture(h, filepath.Join(dir, e.Name())) {
			s.Sprites().Destroy(h)
			continue
		}
		s.Sprites().SetPosition(h, float64(x), float64(y))
		s.Sprites().SetSize(h, size, size)
		s.Sprites().SetVisible(h, true)
		handles = append(handles, h)

		x += size + 16
		if x+size > frameWidth {
			x = 16
			y += size + 16
		}
	}
	return handles
}
