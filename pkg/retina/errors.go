package retina

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoCameraAvailable is returned when no candidate device can be opened.
	ErrNoCameraAvailable = errors.New("retina: no camera available")

	// ErrInvalidConfig is returned when a configuration value is rejected.
	ErrInvalidConfig = errors.New("retina: invalid configuration")
)

// CameraErrorKind classifies recoverable capture-path failures.
type CameraErrorKind int

const (
	// Disconnected means the device handle is no longer valid.
	Disconnected CameraErrorKind = iota

	// EmptyFrame means the device returned a frame with zero data.
	// Common on transient sensor glitches; the caller retries, it is not fatal.
	EmptyFrame

	// Timeout means the device did not answer within the capture deadline.
	// Treated like Disconnected by the scheduler.
	Timeout
)

// String returns the kind name.
func (k CameraErrorKind) String() string {
	switch k {
	case Disconnected:
		return "disconnected"
	case EmptyFrame:
		return "empty_frame"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// CameraError is a recoverable error from a capture device.
// It is handled locally by the scheduler and failover manager,
// never surfaced to the transport layer.
type CameraError struct {
	// Kind classifies the failure.
	Kind CameraErrorKind

	// Device is the ID of the device that failed.
	Device int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CameraError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("retina [cam %d]: %s: %v", e.Device, e.Kind, e.Err)
	}
	return fmt.Sprintf("retina [cam %d]: %s", e.Device, e.Kind)
}

// Unwrap returns the underlying error.
func (e *CameraError) Unwrap() error {
	return e.Err
}

// IsEmptyFrame reports whether err is a CameraError of kind EmptyFrame.
// Every other capture error is treated as a disconnect by the scheduler.
func IsEmptyFrame(err error) bool {
	var ce *CameraError
	return errors.As(err, &ce) && ce.Kind == EmptyFrame
}
