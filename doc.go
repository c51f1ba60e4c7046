// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay renders retained 2D sprites as a UI overlay inside a
// larger host application.
//
// # Overview
//
// overlay is a small sprite-batching layer for the GoGPU ecosystem. It turns
// "load this image, place it here, make it this size/color/visible" calls
// into batched textured-quad draws, while working around the power-of-two
// texture size constraint of some graphics hardware.
//
// Three pieces cooperate each frame:
//
//   - a texture cache that loads image files into backend textures keyed by
//     normalized path, padding dimensions up to powers of two
//   - a draw queue of mutable, handle-addressed sprite items
//   - a renderer that opens a batch, issues one draw per visible item with a
//     valid texture, and closes the batch
//
// All three are owned by a Session, which binds them to a rendering Backend.
//
// # Quick Start
//
//	s := overlay.NewSession(overlay.WithBackendName(overlay.BackendSoftware))
//	if err := s.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Shutdown()
//
//	h := s.Sprites().Create()
//	s.Sprites().SetTexture(h, "icon.png")
//	s.Sprites().SetPosition(h, 10, 10)
//	s.Sprites().SetSize(h, 64, 64)
//	s.Sprites().SetVisible(h, true)
//
//	// In the host's frame callback:
//	s.RenderFrame()
//
// # Backends
//
// Rendering goes through the Backend interface. The software backend is
// always available; the wgpu backend (import
// "github.com/gogpu/overlay/backend/wgpu") renders through gogpu/wgpu on a
// standalone or host-shared GPU device; the raylib backend (build tag
// "raylib") is a simpler non-batched alternative.
//
// # Failure Policy
//
// The overlay prioritizes availability over strict per-frame correctness.
// Every failure is absorbed where it is detected: a missing image means the
// sprite never appears, a failed init disables rendering until a later
// retry, and a mid-batch draw failure removes one sprite from one frame.
// Nothing in this package panics across its public boundary.
//
// # Threading
//
// All session, cache, and queue operations are intended to run on the host's
// single render thread. Loads are synchronous and stall the triggering
// frame; pre-warm textures outside the hot path when framerate matters.
package overlay
