// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "fmt"

// Session owns one overlay instance: the backend binding, the texture cache,
// the draw queue, and the renderer. Sessions are passed explicitly rather
// than held in package globals, so multiple instances can coexist and tests
// get deterministic shutdown and reinit.
//
// Lifecycle: NewSession -> Init -> (frame loop) -> Shutdown. Init may be
// retried after a failure on a later frame; Shutdown is safe to repeat.
type Session struct {
	opts        sessionOptions
	backend     Backend
	cache       *TextureCache
	queue       *DrawQueue
	renderer    *Renderer
	initialized bool
}

// NewSession creates a session. No device handles are acquired until Init.
func NewSession(opts ...Option) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cache := newTextureCache(o.defaultSize)
	return &Session{
		opts:     o,
		cache:    cache,
		queue:    newDrawQueue(cache),
		renderer: newRenderer(),
	}
}

// Init acquires the backend and its device handles. Idempotent: an
// initialized session returns nil immediately. Any acquisition failure
// leaves the session uninitialized so the caller may retry later.
func (s *Session) Init() error {
	if s.initialized {
		return nil
	}

	b := s.opts.backend
	if b == nil && s.opts.backendName != "" {
		b = Get(s.opts.backendName)
		if b == nil {
			return fmt.Errorf("overlay: backend %q: %w", s.opts.backendName, ErrBackendNotAvailable)
		}
	}
	if b == nil {
		b = DefaultBackend()
		if b == nil {
			return ErrBackendNotAvailable
		}
	}

	if err := b.Init(); err != nil {
		return fmt.Errorf("overlay: init backend %q: %w", b.Name(), err)
	}

	s.backend = b
	s.cache.backend = b
	s.renderer.backend = b
	s.initialized = true

	Logger().Info("overlay session initialized", "backend", b.Name())
	return nil
}

// Initialized reports whether Init has succeeded since the last Shutdown.
func (s *Session) Initialized() bool {
	return s.initialized
}

// Shutdown clears the draw queue, destroys all cached textures, releases
// the backend, and returns the session to the uninitialized state. Safe to
// invoke repeatedly; a later Init brings the session back up.
func (s *Session) Shutdown() {
	s.queue.Clear()
	s.cache.Clear()
	if s.backend != nil {
		s.backend.Close()
	}
	s.backend = nil
	s.cache.backend = nil
	s.renderer.backend = nil
	s.initialized = false
}

// Textures returns the session's texture cache.
func (s *Session) Textures() *TextureCache {
	return s.cache
}

// Sprites returns the session's draw queue.
func (s *Session) Sprites() *DrawQueue {
	return s.queue
}

// Backend returns the bound backend, or nil before Init/after Shutdown.
func (s *Session) Backend() Backend {
	return s.backend
}

// RenderFrame runs one render pass over the draw queue. On an uninitialized
// session this is a no-op returning zero stats: rendering must never fault
// a frame.
func (s *Session) RenderFrame() RenderStats {
	if !s.initialized {
		return RenderStats{}
	}
	return s.renderer.RenderFrame(s.cache, s.queue)
}
