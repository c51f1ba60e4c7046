//go:build !raylib

package raylib

import "github.com/gogpu/overlay"

// init registers a nil-returning factory when the raylib tag is not set, so
// this package can be imported unconditionally while the registry skips the
// unavailable backend.
func init() {
	overlay.Register(overlay.BackendRaylib, func() overlay.Backend {
		return nil
	})
}
