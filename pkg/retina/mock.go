package retina

import "sync"

// MockSource implements Source for testing.
// Behavior can be customized via function fields.
type MockSource struct {
	// CaptureFunc is called when Capture is invoked.
	// If nil, returns a uniform mid-gray test frame.
	CaptureFunc func() (*Frame, error)

	// CloseFunc is called when Close is invoked.
	// If nil, returns nil.
	CloseFunc func() error

	mu       sync.Mutex
	captures int
	closed   bool
}

// Capture calls CaptureFunc and records the call.
func (m *MockSource) Capture() (*Frame, error) {
	m.mu.Lock()
	m.captures++
	m.mu.Unlock()
	if m.CaptureFunc != nil {
		return m.CaptureFunc()
	}
	return UniformFrame(8, 8, 128), nil
}

// Close calls CloseFunc and records the call.
func (m *MockSource) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Captures returns the number of Capture calls so far.
func (m *MockSource) Captures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captures
}

// Closed reports whether Close has been called.
func (m *MockSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockOpen builds an OpenFunc that serves sources by device ID.
// Devices with no entry fail to open with a Disconnected CameraError.
func MockOpen(sources map[int]Source) OpenFunc {
	return func(dev Device) (Source, error) {
		if src, ok := sources[dev.ID]; ok && src != nil {
			return src, nil
		}
		return nil, &CameraError{Kind: Disconnected, Device: dev.ID}
	}
}

// UniformFrame returns a single-channel frame filled with the given value.
// Useful for deterministic qualia in tests.
func UniformFrame(w, h int, v byte) *Frame {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = v
	}
	return &Frame{Pix: pix, Width: w, Height: h, Channels: 1}
}

// Verify MockSource implements Source at compile time.
var _ Source = (*MockSource)(nil)
