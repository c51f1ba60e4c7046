// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// Backend errors.
var (
	// ErrNoAdapter is returned when no GPU adapter is available.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrNotInitialized is returned when operations run before Init.
	ErrNotInitialized = errors.New("wgpu: backend not initialized")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// HAL handles.
	ErrProviderNotHAL = errors.New("wgpu: provider does not expose HAL device/queue")
)

// init registers the wgpu backend on package import.
func init() {
	overlay.Register(overlay.BackendWGPU, func() overlay.Backend {
		return New()
	})
}

// SpriteBackend renders sprite batches through the wgpu HAL. It implements
// overlay.Backend.
//
// The backend either opens its own device (standalone) or reuses a device
// shared by the host application via SetDeviceProvider. Shared devices are
// never destroyed by Close; standalone ones are.
type SpriteBackend struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// externalDevice marks device/queue as host-owned.
	externalDevice bool

	initialized bool

	pipeline *spritePipeline

	// Render target. A host-provided surface view composites the overlay
	// over the host frame; otherwise an internal offscreen texture is used.
	surfaceView   hal.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32
	offscreenTex  hal.Texture
	offscreenView hal.TextureView

	// Per-batch accumulation. Vertices are gathered on the CPU and
	// uploaded once at EndBatch, so the whole frame is one submission.
	inBatch bool
	verts   []byte
	draws   []spriteDraw
}

// spriteDraw is one quad's range in the batch vertex buffer.
type spriteDraw struct {
	tex   *spriteTexture
	first uint32
	count uint32
}

// New creates an uninitialized wgpu sprite backend.
func New() *SpriteBackend {
	return &SpriteBackend{}
}

// Name returns "wgpu".
func (b *SpriteBackend) Name() string { return overlay.BackendWGPU }

// SetDeviceProvider switches the backend to a GPU device shared by the host
// application. The provider must expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue (the gpucontext HAL provider shape).
// Call before Init.
func (b *SpriteBackend) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}

	b.releaseDevice()
	b.device = device
	b.queue = queue
	b.externalDevice = true
	return nil
}

// Init acquires a device (unless one was shared) and builds the sprite
// pipeline. Idempotent; failure leaves the backend usable for a later retry.
func (b *SpriteBackend) Init() error {
	if b.initialized {
		return nil
	}

	if b.device == nil {
		if err := b.openDevice(); err != nil {
			return err
		}
	}

	p := newSpritePipeline(b.device, b.queue)
	if err := p.create(); err != nil {
		if !b.externalDevice {
			b.releaseDevice()
		}
		return fmt.Errorf("wgpu: create sprite pipeline: %w", err)
	}
	b.pipeline = p

	b.setViewport(b.surfaceWidth, b.surfaceHeight)
	b.initialized = true
	overlay.Logger().Info("wgpu sprite backend initialized", "external_device", b.externalDevice)
	return nil
}

// openDevice opens a standalone device on the first discrete or integrated
// adapter.
func (b *SpriteBackend) openDevice() error {
	gpuBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := gpuBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.externalDevice = false
	overlay.Logger().Info("wgpu adapter selected", "adapter", selected.Info.Name)
	return nil
}

// Close releases all backend resources. Host-shared devices are left alone.
// Safe to call repeatedly.
func (b *SpriteBackend) Close() {
	b.destroyOffscreen()
	if b.pipeline != nil {
		b.pipeline.destroy()
		b.pipeline = nil
	}
	if !b.externalDevice {
		b.releaseDevice()
	}
	b.inBatch = false
	b.verts = nil
	b.draws = nil
	b.initialized = false
}

// releaseDevice destroys a standalone device and instance.
func (b *SpriteBackend) releaseDevice() {
	if b.device != nil && !b.externalDevice {
		b.device.Destroy()
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.device = nil
	b.queue = nil
	b.externalDevice = false
}

// SetSurfaceTarget points the overlay at the host's surface texture view.
// The render pass then loads the existing surface content, so sprites
// composite over the host frame. Call with nil to return to the internal
// offscreen target. The caller retains ownership of the view.
func (b *SpriteBackend) SetSurfaceTarget(view hal.TextureView, width, height uint32) {
	b.surfaceView = view
	if b.surfaceWidth != width || b.surfaceHeight != height {
		b.destroyOffscreen()
	}
	b.surfaceWidth = width
	b.surfaceHeight = height
	b.setViewport(width, height)
}

// setViewport updates the pipeline's viewport uniform. Zero dimensions keep
// the default until a real size arrives.
func (b *SpriteBackend) setViewport(w, h uint32) {
	if b.pipeline == nil || w == 0 || h == 0 {
		return
	}
	b.pipeline.writeViewport(w, h)
}

// destroyOffscreen drops the internal render target so it is recreated at
// the next size.
func (b *SpriteBackend) destroyOffscreen() {
	if b.device == nil {
		return
	}
	if b.offscreenView != nil {
		b.device.DestroyTextureView(b.offscreenView)
		b.offscreenView = nil
	}
	if b.offscreenTex != nil {
		b.device.DestroyTexture(b.offscreenTex)
		b.offscreenTex = nil
	}
}

// targetView returns the view to render into, creating the offscreen
// fallback target on demand.
func (b *SpriteBackend) targetView() (hal.TextureView, error) {
	if b.surfaceView != nil {
		return b.surfaceView, nil
	}

	w, h := b.surfaceWidth, b.surfaceHeight
	if w == 0 || h == 0 {
		w, h = 1280, 720
	}
	if b.offscreenView != nil {
		return b.offscreenView, nil
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "overlay_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create offscreen target: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "overlay_offscreen_view",
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create offscreen view: %w", err)
	}
	b.offscreenTex = tex
	b.offscreenView = view
	b.setViewport(w, h)
	return view, nil
}
