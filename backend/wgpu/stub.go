//go:build nogpu

package wgpu

import "github.com/gogpu/overlay"

// init registers a nil-returning factory when the nogpu tag is set. This
// lets code compile and import this package unconditionally while the
// registry skips over the unavailable backend.
func init() {
	overlay.Register(overlay.BackendWGPU, func() overlay.Backend {
		return nil
	})
}
