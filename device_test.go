package overlay

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// sharingBackend is a fake backend that records device providers.
type sharingBackend struct {
	fakeBackend
	provider any
}

func (b *sharingBackend) SetDeviceProvider(provider any) error {
	b.provider = provider
	return nil
}

func TestSetDeviceProvider_ForwardsToAwareBackend(t *testing.T) {
	b := &sharingBackend{}
	s := NewSession(WithBackend(b))

	p := &mockProvider{}
	if err := s.SetDeviceProvider(p); err != nil {
		t.Fatalf("SetDeviceProvider: %v", err)
	}
	if b.provider != p {
		t.Error("provider was not forwarded to the backend")
	}
}

func TestSetDeviceProvider_IgnoredByUnawareBackend(t *testing.T) {
	s := NewSession(WithBackend(newFakeBackend()))
	if err := s.SetDeviceProvider(&mockProvider{}); err != nil {
		t.Fatalf("SetDeviceProvider on unaware backend: %v", err)
	}
}

func TestSetDeviceProvider_NilProvider(t *testing.T) {
	s := NewSession(WithBackend(newFakeBackend()))
	if err := s.SetDeviceProvider(nil); err != nil {
		t.Fatalf("SetDeviceProvider(nil): %v", err)
	}
}
