package overlay

// Option configures a Session during creation.
//
// Example:
//
//	// Registry default (wgpu when available, software otherwise)
//	s := overlay.NewSession()
//
//	// Pin the software backend, e.g. for headless tests
//	s := overlay.NewSession(overlay.WithBackendName(overlay.BackendSoftware))
type Option func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	backend     Backend
	backendName string
	defaultSize int
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		backend:     nil, // resolved at Init: named backend, else registry default
		backendName: "",
		defaultSize: DefaultTextureSize,
	}
}

// WithBackend injects a specific backend instance. Takes precedence over
// WithBackendName. Use this for dependency injection in tests.
func WithBackend(b Backend) Option {
	return func(o *sessionOptions) {
		o.backend = b
	}
}

// WithBackendName selects a registered backend by name at Init time
// (e.g. BackendWGPU, BackendSoftware).
func WithBackendName(name string) Option {
	return func(o *sessionOptions) {
		o.backendName = name
	}
}

// WithDefaultTextureSize sets the fallback dimension used when an image
// file's header cannot be read. Values below 1 keep the default.
func WithDefaultTextureSize(size int) Option {
	return func(o *sessionOptions) {
		if size > 0 {
			o.defaultSize = size
		}
	}
}
