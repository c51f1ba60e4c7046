// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build raylib

package raylib

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/gogpu/overlay"
)

// Backend errors.
var (
	// ErrWindowNotReady is returned while the host's raylib window does
	// not exist yet. Init may be retried on a later frame.
	ErrWindowNotReady = errors.New("raylib: host window not ready")

	// ErrNotInitialized is returned when operations run before Init.
	ErrNotInitialized = errors.New("raylib: backend not initialized")
)

// init registers the raylib backend on package import.
func init() {
	overlay.Register(overlay.BackendRaylib, func() overlay.Backend {
		return New()
	})
}

// SpriteBackend draws sprites through raylib, one DrawTexturePro call per
// item. It implements overlay.Backend.
//
// The host owns the window and the frame: draws issued between BeginBatch
// and EndBatch land inside the host's open BeginDrawing/EndDrawing pair.
type SpriteBackend struct {
	initialized bool
	inBatch     bool
}

// New creates an uninitialized raylib sprite backend.
func New() *SpriteBackend {
	return &SpriteBackend{}
}

// Name returns "raylib".
func (b *SpriteBackend) Name() string { return overlay.BackendRaylib }

// Init binds to the host's raylib window. Idempotent; fails while the
// window does not exist so the caller may retry on a later frame.
func (b *SpriteBackend) Init() error {
	if b.initialized {
		return nil
	}
	if !rl.IsWindowReady() {
		return ErrWindowNotReady
	}
	b.initialized = true
	return nil
}

// Close resets the binding. The host window is not touched. Safe to call
// repeatedly.
func (b *SpriteBackend) Close() {
	b.initialized = false
	b.inBatch = false
}

// rlTexture wraps one uploaded raylib texture.
type rlTexture struct {
	tex       rl.Texture2D
	destroyed bool
}

func (t *rlTexture) Width() int  { return int(t.tex.Width) }
func (t *rlTexture) Height() int { return int(t.tex.Height) }

// Destroy unloads the GPU texture. Safe to call repeatedly.
func (t *rlTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	rl.UnloadTexture(t.tex)
}

// CreateTexture loads the image at path, resizes it to exactly
// width x height (raylib stretches the pixels), and uploads it.
func (b *SpriteBackend) CreateTexture(path string, width, height int) (overlay.Texture, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	img := rl.LoadImage(path)
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("raylib: load image %s failed", path)
	}
	defer rl.UnloadImage(img)

	rl.ImageResize(img, int32(width), int32(height))
	tex := rl.LoadTextureFromImage(img)
	if tex.ID == 0 {
		return nil, fmt.Errorf("raylib: upload texture %s failed", path)
	}
	return &rlTexture{tex: tex}, nil
}

// BeginBatch marks the frame open. raylib draws retained primitives
// immediately, so there is nothing to accumulate.
func (b *SpriteBackend) BeginBatch() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if b.inBatch {
		return overlay.ErrBatchAlreadyOpen
	}
	b.inBatch = true
	return nil
}

// Draw issues one DrawTexturePro call with rotation fixed at zero.
func (b *SpriteBackend) Draw(cmd overlay.DrawCommand) error {
	if !b.inBatch {
		return overlay.ErrBatchNotOpen
	}
	if cmd.Texture == nil {
		return overlay.ErrNilTexture
	}
	tex, ok := cmd.Texture.(*rlTexture)
	if !ok {
		return fmt.Errorf("raylib: foreign texture %T", cmd.Texture)
	}
	if tex.destroyed {
		return fmt.Errorf("raylib: texture already destroyed")
	}

	src := rl.NewRectangle(
		float32(cmd.Source.X), float32(cmd.Source.Y),
		float32(cmd.Source.W), float32(cmd.Source.H),
	)
	dst := rl.NewRectangle(
		float32(cmd.X), float32(cmd.Y),
		float32(float64(cmd.Source.W)*cmd.ScaleX),
		float32(float64(cmd.Source.H)*cmd.ScaleY),
	)
	tint := rl.NewColor(cmd.Color.Red(), cmd.Color.Green(), cmd.Color.Blue(), cmd.Color.Alpha())

	rl.DrawTexturePro(tex.tex, src, dst, rl.NewVector2(0, 0), 0, tint)
	return nil
}

// EndBatch marks the frame closed.
func (b *SpriteBackend) EndBatch() error {
	if !b.inBatch {
		return overlay.ErrBatchNotOpen
	}
	b.inBatch = false
	return nil
}
