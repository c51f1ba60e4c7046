// Package raylib provides a non-batched sprite backend on raylib.
//
// This is the simpler fallback path: each Draw maps directly to one
// retained-mode DrawTexturePro call, with no batch accumulation. It suits
// hosts that already run a raylib window and want the overlay drawn inside
// their existing BeginDrawing/EndDrawing frame.
//
// The backend is opt-in via the "raylib" build tag (raylib needs cgo and
// system libraries):
//
//	go build -tags raylib
//	import _ "github.com/gogpu/overlay/backend/raylib"
//
// Without the tag a nil stub is registered and the registry skips it.
//
// Init requires the host's raylib window to exist already; it fails (and
// may be retried) until rl.IsWindowReady reports true. BeginBatch/EndBatch
// only track state: draws land on whatever render target the host has open.
package raylib
