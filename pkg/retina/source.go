package retina

// Device identifies a camera candidate for capture.
type Device struct {
	// ID is the capture backend's device index.
	ID int `json:"id"`

	// Priority orders failover candidates; lower is tried first.
	Priority int `json:"priority"`
}

// Source captures raw frames from a single opened camera device.
//
// Capture returns a CameraError of kind Disconnected when the handle is no
// longer valid, EmptyFrame when the device produced a zero-data frame, and
// Timeout when the device did not answer in time. Sources do not retry;
// retry policy belongs to the capture loop.
type Source interface {
	Capture() (*Frame, error)
	Close() error
}

// OpenFunc opens a capture source for the given device.
// Implementations must fail fast when the device cannot be opened so the
// failover scan can move on to the next candidate.
type OpenFunc func(dev Device) (Source, error)

// DevicesFromIDs builds an ordered candidate list from raw device IDs,
// with priority following list order.
func DevicesFromIDs(ids []int) []Device {
	devices := make([]Device, 0, len(ids))
	for i, id := range ids {
		devices = append(devices, Device{ID: id, Priority: i})
	}
	return devices
}
