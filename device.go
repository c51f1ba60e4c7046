package overlay

import "github.com/gogpu/gpucontext"

// DeviceProviderAware is implemented by backends that can reuse a GPU device
// owned by the host application instead of opening their own.
//
// The provider is passed as any so backends can assert the handle types they
// actually need (for example HalDevice() any / HalQueue() any returning
// wgpu/hal types).
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

// SetDeviceProvider hands the host's GPU device provider to the session's
// backend so the overlay renders on the host's device instead of opening its
// own. Call between NewSession and Init, with the provider obtained from the
// host framework (for example gogpu.App.GPUContextProvider()).
//
// Backends without device sharing ignore the provider; the error then is nil.
func (s *Session) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return nil
	}
	b := s.opts.backend
	if b == nil && s.opts.backendName != "" {
		b = Get(s.opts.backendName)
	}
	if b == nil {
		return nil
	}
	if dpa, ok := b.(DeviceProviderAware); ok {
		// Keep the resolved instance so Init binds the same backend the
		// provider was attached to.
		s.opts.backend = b
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
