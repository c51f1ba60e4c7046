// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"sync"
)

// Well-known backend names.
const (
	// BackendWGPU is the batched GPU backend (backend/wgpu).
	BackendWGPU = "wgpu"

	// BackendRaylib is the non-batched raylib backend (backend/raylib,
	// build tag "raylib").
	BackendRaylib = "raylib"

	// BackendSoftware is the CPU fallback backend, always available.
	BackendSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no usable backend is registered.
	ErrBackendNotAvailable = errors.New("overlay: no backend available")

	// ErrBackendNotInitialized is returned when a backend operation is
	// called before Init.
	ErrBackendNotInitialized = errors.New("overlay: backend not initialized")

	// ErrBatchNotOpen is returned when Draw or EndBatch is called outside
	// a BeginBatch/EndBatch pair.
	ErrBatchNotOpen = errors.New("overlay: batch not open")

	// ErrBatchAlreadyOpen is returned when BeginBatch is called twice
	// without an intervening EndBatch.
	ErrBatchAlreadyOpen = errors.New("overlay: batch already open")

	// ErrNilTexture is returned when a draw command carries no texture.
	ErrNilTexture = errors.New("overlay: draw command has nil texture")
)

// Rect is a pixel-space rectangle, used for source regions within a texture.
type Rect struct {
	X, Y, W, H int
}

// Texture is a backend-resident image. The texture cache exclusively owns
// every Texture it creates; nothing else may call Destroy.
//
// Width and Height report the allocated dimensions, which for power-of-two
// constrained backends are the padded sizes actually backing the resource,
// not the original image dimensions.
type Texture interface {
	Width() int
	Height() int
	Destroy()
}

// DrawCommand describes one textured-quad draw within an open batch.
// Rotation is fixed at zero on this rendering path.
type DrawCommand struct {
	// Texture is the backend texture to sample. Must be non-nil and
	// created by the same backend.
	Texture Texture

	// Source is the sampled sub-region in the texture's pixel space.
	Source Rect

	// ScaleX, ScaleY scale the source region to the on-screen size.
	ScaleX, ScaleY float64

	// X, Y is the integer screen position of the quad's top-left corner.
	X, Y int

	// Color is the packed ARGB modulation color.
	Color Color
}

// Backend is the boundary with the hosting graphics environment. It creates
// and owns the device-level objects, uploads file images into textures at an
// explicit target size (stretching the source pixels to fill), and submits
// textured-quad draws between BeginBatch and EndBatch.
//
// Backends must be registered via Register and are selected by name or via
// DefaultBackend. Implementations are used from a single render thread.
type Backend interface {
	// Name returns the backend identifier (e.g., "wgpu", "software").
	Name() string

	// Init acquires the backend's device handles. It must be idempotent:
	// calling Init on an initialized backend returns nil immediately.
	Init() error

	// Close releases all backend resources. Safe to call repeatedly.
	Close()

	// CreateTexture loads the image file at path into a new texture of
	// exactly width x height pixels, stretching the source image to fill
	// the target size. The returned texture's Width/Height must equal the
	// requested dimensions; the caller treats any disagreement as failure.
	CreateTexture(path string, width, height int) (Texture, error)

	// BeginBatch opens the per-frame sprite batch.
	BeginBatch() error

	// Draw issues one textured-quad draw inside the open batch.
	Draw(cmd DrawCommand) error

	// EndBatch closes the batch and submits accumulated draws.
	EndBatch() error
}

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)

	// liveBackends tracks instances handed out by Get/DefaultBackend so
	// SetLogger can propagate to them.
	liveBackends = make(map[string]Backend)

	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendRaylib, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
	delete(liveBackends, name)
}

// Available returns the names of all registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name, or nil if the name is not
// registered (or its factory declines, e.g. a build-tag stub).
func Get(name string) Backend {
	registryMu.Lock()
	defer registryMu.Unlock()
	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return instantiateLocked(name, factory)
}

// DefaultBackend returns the best available backend based on priority:
// wgpu > raylib > software. Returns nil if no backend is registered.
func DefaultBackend() Backend {
	registryMu.Lock()
	defer registryMu.Unlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := instantiateLocked(name, factory); b != nil {
				return b
			}
		}
	}

	// Fallback: first factory that yields an instance.
	for name, factory := range backends {
		if b := instantiateLocked(name, factory); b != nil {
			return b
		}
	}
	return nil
}

// instantiateLocked runs a factory and records the live instance for logger
// propagation. Caller holds registryMu.
func instantiateLocked(name string, factory BackendFactory) Backend {
	b := factory()
	if b == nil {
		return nil
	}
	propagateLogger(b, Logger())
	liveBackends[name] = b
	return b
}
