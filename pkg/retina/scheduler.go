package retina

import (
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/go-retina/internal/log"
)

type wakeReason int

const (
	wakeTimer wakeReason = iota
	wakeAccess
	wakeStop
)

// runLoop is the capture scheduler: sleep for the metabolic interval,
// capture one frame, derive qualia, publish. Capture-path errors degrade
// the reported status but never terminate the loop.
func (r *Retina) runLoop() {
	defer close(r.done)
	defer func() {
		if r.source != nil {
			r.source.Close()
		}
	}()

	var lastCapture time.Time
	for {
		interval := r.metabolism.Interval()
		wait := time.Until(lastCapture.Add(interval))
		if wait > 0 {
			switch r.sleep(wait) {
			case wakeStop:
				return
			case wakeAccess:
				// An access may have reset the metabolic interval;
				// re-derive the deadline instead of finishing a
				// possibly hibernation-length sleep.
				continue
			}
		} else {
			// Zero-interval schedules still observe stop promptly.
			select {
			case <-r.stop:
				return
			default:
			}
		}

		r.captureOnce()
		lastCapture = time.Now()
	}
}

// sleep waits up to d, returning early on a read access or a stop signal.
func (r *Retina) sleep(d time.Duration) wakeReason {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-r.stop:
		return wakeStop
	case <-r.wake:
		return wakeAccess
	case <-timer.C:
		return wakeTimer
	}
}

// captureOnce pulls one frame from the active source and publishes the
// outcome. EmptyFrame keeps the stored frame and reports DARK; a dead
// device triggers failover with a single retry against the new handle;
// a failed failover keeps the stale record and reports ERROR.
func (r *Retina) captureOnce() {
	frame, err := r.source.Capture()
	if err == nil {
		r.publish(frame)
		return
	}

	if IsEmptyFrame(err) {
		log.Warn("captured void", "camera", r.device.ID)
		r.buffer.SetStatus(StatusDark)
		return
	}

	// Disconnected, timed out, or an unclassified device error:
	// rebind and retry once.
	log.Warn("capture failed", "camera", r.device.ID, "error", err)
	r.source.Close()

	src, dev, ferr := r.failover.ProbeAndBind(r.device.ID)
	if ferr != nil {
		log.Error("all cameras failed", "error", ferr)
		r.buffer.SetStatus(StatusError)
		return
	}
	r.source = src
	r.device = dev

	frame, err = r.source.Capture()
	if err != nil {
		log.Warn("retry on failover camera failed", "camera", dev.ID, "error", err)
		r.buffer.SetStatus(StatusError)
		return
	}
	r.publish(frame)
}

// publish computes qualia against the previous frame and swaps in a fresh
// observation.
func (r *Retina) publish(frame *Frame) {
	q := ComputeQualia(frame, r.prev)
	r.prev = frame
	r.seq++

	obs := &Observation{
		Frame:      frame,
		Qualia:     q,
		CapturedAt: time.Now(),
		Status:     StatusSight,
		Seq:        r.seq,
		CaptureID:  uuid.New(),
		Camera:     r.device.ID,
	}
	r.buffer.Publish(obs)
	log.Debug("frame published",
		"camera", r.device.ID,
		"seq", obs.Seq,
		"brightness", q.Brightness,
		"motion", q.Motion,
	)

	if r.OnPublish != nil {
		r.OnPublish(obs)
	}
}
