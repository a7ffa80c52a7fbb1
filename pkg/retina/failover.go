package retina

import (
	"sort"
	"sync"

	"github.com/teslashibe/go-retina/internal/log"
)

// Failover owns the prioritized camera candidate list and the rebinding
// policy used when the active device errors out.
//
// Failed devices are marked degraded, not removed: a degraded device sinks
// to the back of the probe order and is still retried on later scans, so a
// camera that comes back is eventually recovered.
type Failover struct {
	open OpenFunc

	mu         sync.Mutex
	candidates []Device
	degraded   map[int]bool
}

// NewFailover creates a failover manager over the given candidates.
// Candidates are probed in ascending priority order.
func NewFailover(open OpenFunc, candidates []Device) *Failover {
	sorted := make([]Device, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Failover{
		open:       open,
		candidates: sorted,
		degraded:   make(map[int]bool),
	}
}

// Bind opens the first candidate that succeeds. Used at startup; returns
// ErrNoCameraAvailable if no device can be opened.
func (f *Failover) Bind() (Source, Device, error) {
	return f.probe()
}

// ProbeAndBind marks failedID as degraded and rescans every candidate,
// healthy devices first, returning the first that opens. The device that
// just failed is still probed, last: on a single-camera host a reopen is
// the only road back from a transient disconnect.
// Returns ErrNoCameraAvailable when every candidate fails; the caller
// keeps its stale observation rather than discarding it.
func (f *Failover) ProbeAndBind(failedID int) (Source, Device, error) {
	f.mu.Lock()
	f.degraded[failedID] = true
	f.mu.Unlock()
	log.Warn("camera failed, scanning alternates", "camera", failedID)
	return f.probe()
}

func (f *Failover) probe() (Source, Device, error) {
	for _, dev := range f.probeOrder() {
		src, err := f.open(dev)
		if err != nil {
			log.Debug("candidate failed to open", "camera", dev.ID, "error", err)
			f.mu.Lock()
			f.degraded[dev.ID] = true
			f.mu.Unlock()
			continue
		}
		f.mu.Lock()
		delete(f.degraded, dev.ID)
		f.mu.Unlock()
		log.Info("camera bound", "camera", dev.ID, "priority", dev.Priority)
		return src, dev, nil
	}
	return nil, Device{}, ErrNoCameraAvailable
}

// probeOrder returns healthy candidates first, degraded ones last,
// each group in priority order.
func (f *Failover) probeOrder() []Device {
	f.mu.Lock()
	defer f.mu.Unlock()
	order := make([]Device, 0, len(f.candidates))
	for _, dev := range f.candidates {
		if !f.degraded[dev.ID] {
			order = append(order, dev)
		}
	}
	for _, dev := range f.candidates {
		if f.degraded[dev.ID] {
			order = append(order, dev)
		}
	}
	return order
}

// Degraded reports whether the given device is currently marked degraded.
func (f *Failover) Degraded(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded[id]
}
