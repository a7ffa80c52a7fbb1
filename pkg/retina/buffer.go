package retina

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Status describes what the latest observation represents.
type Status string

const (
	// StatusSight is a good frame with fresh qualia.
	StatusSight Status = "SIGHT"

	// StatusDark means the device returned no data on the last attempt
	// (lens covered, sensor glitch) or nothing has been captured yet.
	// Any stored frame is stale but retained.
	StatusDark Status = "DARK"

	// StatusError means capture and failover both failed.
	// Any stored frame is stale but retained.
	StatusError Status = "ERROR"
)

// Observation is the single record the retina holds: the freshest frame,
// its qualia, and capture metadata.
type Observation struct {
	Frame      *Frame
	Qualia     Qualia
	CapturedAt time.Time
	Status     Status

	// Seq increments on every successful capture. Stale reads across
	// DARK/ERROR stretches repeat the same Seq.
	Seq uint64

	// CaptureID uniquely identifies the capture that produced Frame.
	CaptureID uuid.UUID

	// Camera is the device ID the frame came from.
	Camera int
}

// Buffer holds at most one observation. Publishing replaces the whole
// record by pointer swap, so a concurrent read sees either the previous
// or the new record in full, never a mixture.
type Buffer struct {
	cur atomic.Pointer[Observation]
}

// Publish replaces the stored observation.
func (b *Buffer) Publish(o *Observation) {
	b.cur.Store(o)
}

// Load returns the current observation, or nil if nothing was ever published.
// The returned record is shared and must be treated as read-only.
func (b *Buffer) Load() *Observation {
	return b.cur.Load()
}

// SetStatus replaces the record with a copy carrying the new status,
// preserving the prior frame, qualia and capture time. Staleness is
// preferred to blankness on capture failure.
//
// On an empty buffer it stores a frameless record so readers still
// see the degraded status.
func (b *Buffer) SetStatus(s Status) {
	for {
		old := b.cur.Load()
		next := &Observation{Status: s, CapturedAt: time.Now()}
		if old != nil {
			copied := *old
			copied.Status = s
			next = &copied
		}
		if b.cur.CompareAndSwap(old, next) {
			return
		}
	}
}
