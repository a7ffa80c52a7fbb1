package retina

import (
	"fmt"
	"time"
)

// Config holds the tunable parameters for a Retina.
type Config struct {
	// Devices is the ordered camera candidate list. The first device that
	// opens at startup becomes the active one; the rest are failover
	// alternates.
	Devices []Device

	// BaseInterval is the sampling interval while the retina is being read.
	// Zero means capture as fast as the device allows.
	BaseInterval time.Duration

	// CaptureTimeout bounds a single device read. A capture that exceeds it
	// is treated as a disconnect and triggers failover. Zero disables the
	// deadline.
	CaptureTimeout time.Duration

	// Open opens capture sources. Defaults to the OpenCV backend.
	Open OpenFunc

	// Encode serializes frames for transport. Defaults to OpenCV JPEG.
	Encode EncodeFunc
}

// DefaultConfig returns a Config with the stock metabolic parameters and
// a four-camera failover scan, matching a typical single-webcam host.
func DefaultConfig() Config {
	return Config{
		Devices:        DevicesFromIDs([]int{0, 1, 2, 3}),
		BaseInterval:   DefaultBaseInterval,
		CaptureTimeout: 5 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Devices) == 0 {
		return fmt.Errorf("%w: at least one camera device required", ErrInvalidConfig)
	}
	if c.BaseInterval < 0 {
		return fmt.Errorf("%w: base interval must be >= 0", ErrInvalidConfig)
	}
	if c.CaptureTimeout < 0 {
		return fmt.Errorf("%w: capture timeout must be >= 0", ErrInvalidConfig)
	}
	return nil
}
