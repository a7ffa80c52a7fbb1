package retina

import (
	"testing"
	"time"
)

// newTestMetabolism returns a controller on a fake clock plus a function
// to advance it.
func newTestMetabolism(base time.Duration) (*Metabolism, func(time.Duration)) {
	m := NewMetabolism(base)
	now := time.Unix(1_000_000, 0)
	m.clock = func() time.Time { return now }
	m.Touch()
	advance := func(d time.Duration) { now = now.Add(d) }
	return m, advance
}

func TestMetabolism_BaseAtZeroIdle(t *testing.T) {
	m, _ := newTestMetabolism(5 * time.Second)

	if got := m.Interval(); got != 5*time.Second {
		t.Errorf("Interval at idle=0: got %v, want 5s", got)
	}
	if got := m.Phase(); got != PhaseActive {
		t.Errorf("Phase at idle=0: got %v, want ACTIVE", got)
	}
}

func TestMetabolism_CeilingAtWindow(t *testing.T) {
	m, advance := newTestMetabolism(5 * time.Second)

	advance(DefaultHibernationWindow)
	if got := m.Interval(); got != DefaultHibernationCeiling {
		t.Errorf("Interval at idle=window: got %v, want %v", got, DefaultHibernationCeiling)
	}
	if got := m.Phase(); got != PhaseHibernating {
		t.Errorf("Phase at idle=window: got %v, want HIBERNATING", got)
	}

	advance(time.Hour)
	if got := m.Interval(); got != DefaultHibernationCeiling {
		t.Errorf("Interval beyond window: got %v, want %v", got, DefaultHibernationCeiling)
	}
}

func TestMetabolism_MonotonicNonDecreasing(t *testing.T) {
	m, advance := newTestMetabolism(2 * time.Second)

	prev := m.Interval()
	for i := 0; i < 60; i++ {
		advance(7 * time.Second)
		cur := m.Interval()
		if cur < prev {
			t.Fatalf("interval decreased at step %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
}

func TestMetabolism_DecayingPhaseBetweenEndpoints(t *testing.T) {
	m, advance := newTestMetabolism(5 * time.Second)

	advance(100 * time.Second)
	if got := m.Phase(); got != PhaseDecaying {
		t.Errorf("Phase at idle=100s: got %v, want DECAYING", got)
	}
	cur := m.Interval()
	if cur <= 5*time.Second || cur >= DefaultHibernationCeiling {
		t.Errorf("Interval at idle=100s: got %v, want between base and ceiling", cur)
	}
}

func TestMetabolism_TouchResetsToBase(t *testing.T) {
	m, advance := newTestMetabolism(5 * time.Second)

	advance(DefaultHibernationWindow + time.Minute)
	if m.Interval() != DefaultHibernationCeiling {
		t.Fatal("expected hibernation before touch")
	}

	m.Touch()
	if got := m.Interval(); got != 5*time.Second {
		t.Errorf("Interval after touch: got %v, want base", got)
	}
	if got := m.Phase(); got != PhaseActive {
		t.Errorf("Phase after touch: got %v, want ACTIVE", got)
	}
}

func TestMetabolism_SetBaseRecomputesImmediately(t *testing.T) {
	m, _ := newTestMetabolism(5 * time.Second)

	m.SetBase(200 * time.Millisecond)
	if got := m.Interval(); got != 200*time.Millisecond {
		t.Errorf("Interval after SetBase: got %v, want 200ms", got)
	}
	if got := m.Base(); got != 200*time.Millisecond {
		t.Errorf("Base: got %v, want 200ms", got)
	}
}

func TestMetabolism_ZeroBaseWhileAccessed(t *testing.T) {
	m, _ := newTestMetabolism(0)

	if got := m.Interval(); got != 0 {
		t.Errorf("Interval with zero base at idle=0: got %v, want 0", got)
	}
}

func TestMetabolism_BaseAboveCeilingNeverDecays(t *testing.T) {
	m, advance := newTestMetabolism(5 * time.Minute)

	advance(time.Hour)
	if got := m.Interval(); got != 5*time.Minute {
		t.Errorf("Interval with base above ceiling: got %v, want base", got)
	}
	if got := m.Phase(); got != PhaseActive {
		t.Errorf("Phase with base above ceiling: got %v, want ACTIVE", got)
	}
}
