// Package retina exposes a webcam as a polled sensory endpoint: a background
// loop captures frames at a self-adapting rate, derives per-frame qualia
// (brightness, motion), keeps only the freshest observation, and fails over
// to alternate devices when the camera dies.
//
// Two operations make up the public contract: Read returns the current
// observation and counts as an access for rate adaptation; Configure adjusts
// the base sampling interval. Reads during hibernation wake the capture loop
// immediately.
package retina

import (
	"fmt"
	"sync"
	"time"

	"github.com/teslashibe/go-retina/internal/log"
)

// Retina is the adaptive vision service. Create one with New, then Start it;
// Read and Configure are safe for concurrent use with the capture loop.
type Retina struct {
	cfg        Config
	metabolism *Metabolism
	buffer     *Buffer
	failover   *Failover

	// Capture-loop-owned state. Only the loop goroutine touches these
	// after Start.
	source Source
	device Device
	prev   *Frame
	seq    uint64

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	mu      sync.Mutex
	running bool

	// OnPublish, if set, is invoked from the capture loop after each
	// successful publish. Used by the dashboard to push frames.
	OnPublish func(*Observation)
}

// New creates a Retina from the given config.
func New(cfg Config) (*Retina, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Open == nil {
		cfg.Open = GoCVOpen(cfg.CaptureTimeout)
	}
	if cfg.Encode == nil {
		cfg.Encode = EncodeJPEG
	}
	return &Retina{
		cfg:        cfg,
		metabolism: NewMetabolism(cfg.BaseInterval),
		buffer:     &Buffer{},
		failover:   NewFailover(cfg.Open, cfg.Devices),
		wake:       make(chan struct{}, 1),
	}, nil
}

// Start binds the first available camera and launches the capture loop.
// Failing to open any device at startup is the one fatal condition: the
// error surfaces here instead of entering a blind loop.
func (r *Retina) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	src, dev, err := r.failover.Bind()
	if err != nil {
		return fmt.Errorf("retina: open initial camera: %w", err)
	}
	r.source = src
	r.device = dev
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.running = true

	go r.runLoop()
	log.Info("retina started", "camera", dev.ID, "interval", r.metabolism.Base())
	return nil
}

// Stop signals the capture loop and waits for it to exit. The loop observes
// the signal within one sleep interval at most; in practice immediately,
// since the sleep is interruptible.
func (r *Retina) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stop)
	done := r.done
	r.mu.Unlock()

	<-done
	log.Info("retina stopped")
}

// Read returns the current observation and registers an access: the idle
// clock resets and a hibernating capture loop is woken so the next capture
// happens on the base schedule.
//
// Before the first capture completes the returned record is a frameless
// DARK observation.
func (r *Retina) Read() *Observation {
	r.metabolism.Touch()
	select {
	case r.wake <- struct{}{}:
	default:
	}
	if obs := r.buffer.Load(); obs != nil {
		return obs
	}
	return &Observation{Status: StatusDark, CapturedAt: time.Now()}
}

// Configure sets the base sampling interval in seconds. Zero means the
// fastest supported rate; negative values are rejected with ErrInvalidConfig.
func (r *Retina) Configure(seconds float64) error {
	if seconds < 0 {
		return fmt.Errorf("%w: interval must be >= 0, got %g", ErrInvalidConfig, seconds)
	}
	r.metabolism.SetBase(time.Duration(seconds * float64(time.Second)))
	select {
	case r.wake <- struct{}{}:
	default:
	}
	log.Info("base interval adjusted", "interval_seconds", seconds)
	return nil
}

// Base returns the configured base interval.
func (r *Retina) Base() time.Duration {
	return r.metabolism.Base()
}

// Interval returns the current metabolic sampling interval.
func (r *Retina) Interval() time.Duration {
	return r.metabolism.Interval()
}

// Phase returns the current metabolic phase.
func (r *Retina) Phase() Phase {
	return r.metabolism.Phase()
}

// Encode serializes a frame using the configured encoder.
func (r *Retina) Encode(f *Frame) ([]byte, error) {
	return r.cfg.Encode(f)
}

// Stats is a point-in-time snapshot for diagnostics.
type Stats struct {
	Phase           Phase   `json:"phase"`
	IntervalSeconds float64 `json:"interval_seconds"`
	BaseSeconds     float64 `json:"base_seconds"`
	Status          Status  `json:"status"`
	Qualia          Qualia  `json:"qualia"`
	Camera          int     `json:"camera"`
	Seq             uint64  `json:"seq"`
	CapturedAt      int64   `json:"captured_at_unix"`
}

// Stats returns the current service snapshot.
func (r *Retina) Stats() Stats {
	s := Stats{
		Phase:           r.metabolism.Phase(),
		IntervalSeconds: r.metabolism.Interval().Seconds(),
		BaseSeconds:     r.metabolism.Base().Seconds(),
		Status:          StatusDark,
	}
	if obs := r.buffer.Load(); obs != nil {
		s.Status = obs.Status
		s.Qualia = obs.Qualia
		s.Camera = obs.Camera
		s.Seq = obs.Seq
		s.CapturedAt = obs.CapturedAt.Unix()
	}
	return s
}
