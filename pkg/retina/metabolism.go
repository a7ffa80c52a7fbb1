package retina

import (
	"math"
	"sync"
	"time"
)

// Phase is the metabolic state of the sampling loop.
type Phase string

const (
	// PhaseActive means the retina is being read and samples at the base interval.
	PhaseActive Phase = "ACTIVE"

	// PhaseDecaying means the interval is growing toward the hibernation ceiling.
	PhaseDecaying Phase = "DECAYING"

	// PhaseHibernating means the idle window has elapsed and the interval
	// sits at the hibernation ceiling.
	PhaseHibernating Phase = "HIBERNATING"
)

// Metabolism adapts the sampling interval to recent access patterns.
//
// The current interval is always derived from elapsed idle time, never
// stored: a linear ramp in whole-second steps from the base interval at
// idle=0 to the ceiling at idle>=window. Both endpoints are contractual;
// the curve shape between them is an implementation choice.
type Metabolism struct {
	mu         sync.Mutex
	base       time.Duration
	ceiling    time.Duration
	window     time.Duration
	lastAccess time.Time

	clock func() time.Time
}

// Metabolic defaults: ignored for five minutes drops to one frame per minute.
const (
	DefaultBaseInterval       = 5 * time.Second
	DefaultHibernationCeiling = 60 * time.Second
	DefaultHibernationWindow  = 300 * time.Second
)

// NewMetabolism creates a controller with the given base interval and
// default hibernation parameters.
func NewMetabolism(base time.Duration) *Metabolism {
	m := &Metabolism{
		base:    base,
		ceiling: DefaultHibernationCeiling,
		window:  DefaultHibernationWindow,
		clock:   time.Now,
	}
	m.lastAccess = m.clock()
	return m
}

// Interval returns the current sampling interval derived from idle time.
func (m *Metabolism) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intervalLocked()
}

func (m *Metabolism) intervalLocked() time.Duration {
	if m.base >= m.ceiling {
		// A base slower than the ceiling never decays further.
		return m.base
	}
	idle := m.clock().Sub(m.lastAccess)
	if idle <= 0 {
		return m.base
	}
	if idle >= m.window {
		return m.ceiling
	}
	// Whole elapsed seconds, so the interval holds exactly at base for
	// sub-second idle and lands exactly on the ceiling at the window edge.
	steps := math.Floor(idle.Seconds())
	grown := m.base + time.Duration(float64(m.ceiling-m.base)*steps/m.window.Seconds())
	if grown > m.ceiling {
		return m.ceiling
	}
	return grown
}

// Touch records an external read access: the idle clock resets and the
// next derived interval is the base interval again.
func (m *Metabolism) Touch() {
	m.mu.Lock()
	m.lastAccess = m.clock()
	m.mu.Unlock()
}

// SetBase changes the base interval and resets the idle clock, so a
// reconfigure while hibernating resumes at the new base pace.
func (m *Metabolism) SetBase(base time.Duration) {
	m.mu.Lock()
	m.base = base
	m.lastAccess = m.clock()
	m.mu.Unlock()
}

// Base returns the configured base interval.
func (m *Metabolism) Base() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.base
}

// Phase returns the current metabolic phase, derived from the interval.
func (m *Metabolism) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.base >= m.ceiling {
		return PhaseActive
	}
	switch cur := m.intervalLocked(); {
	case cur <= m.base:
		return PhaseActive
	case cur >= m.ceiling:
		return PhaseHibernating
	default:
		return PhaseDecaying
	}
}
