// Package wgpu provides the batched GPU sprite backend using gogpu/wgpu.
//
// This is the primary rendering path: sprite quads accumulate between
// BeginBatch and EndBatch and are submitted as a single render pass on a
// Vulkan/Metal/DX12 device through the wgpu HAL.
//
// # Registration and Selection
//
// The backend registers itself on import:
//
//	import _ "github.com/gogpu/overlay/backend/wgpu"
//
// and is selected first by the registry priority. Building with the "nogpu"
// tag replaces the registration with a nil stub so headless builds fall
// back to the software backend.
//
// # Device Sharing
//
// Inside a host application that already owns a GPU device, pass the host's
// provider before Init:
//
//	b := wgpu.New()
//	_ = b.SetDeviceProvider(hostProvider) // exposes HalDevice()/HalQueue()
//	s := overlay.NewSession(overlay.WithBackend(b))
//
// Without a provider, Init opens a standalone device on the first suitable
// adapter. Call SetSurfaceTarget each time the host's surface view changes
// so the overlay composites over the host frame; without a surface target
// the backend renders into an internal offscreen texture.
package wgpu
