package retina

import (
	"time"

	"gocv.io/x/gocv"
)

// GoCVOpen returns an OpenFunc backed by OpenCV's video capture.
// captureTimeout bounds each device read; a read that exceeds it surfaces
// as a Timeout CameraError so the capture loop can fail over instead of
// stalling behind a wedged device.
func GoCVOpen(captureTimeout time.Duration) OpenFunc {
	return func(dev Device) (Source, error) {
		vc, err := gocv.OpenVideoCapture(dev.ID)
		if err != nil {
			return nil, &CameraError{Kind: Disconnected, Device: dev.ID, Err: err}
		}
		if !vc.IsOpened() {
			vc.Close()
			return nil, &CameraError{Kind: Disconnected, Device: dev.ID}
		}
		return &gocvSource{dev: dev, vc: vc, timeout: captureTimeout}, nil
	}
}

type gocvSource struct {
	dev     Device
	vc      *gocv.VideoCapture
	timeout time.Duration
}

type captureResult struct {
	frame *Frame
	err   error
}

// Capture reads one frame, copying it out of OpenCV-owned memory so the
// returned Frame has no cgo lifetime attached.
func (s *gocvSource) Capture() (*Frame, error) {
	ch := make(chan captureResult, 1)
	go func() {
		ch <- s.read()
	}()

	if s.timeout <= 0 {
		res := <-ch
		return res.frame, res.err
	}
	select {
	case res := <-ch:
		return res.frame, res.err
	case <-time.After(s.timeout):
		// The reader goroutine stays parked on the wedged device; the
		// caller closes the handle on failover, which unblocks it.
		return nil, &CameraError{Kind: Timeout, Device: s.dev.ID}
	}
}

func (s *gocvSource) read() captureResult {
	mat := gocv.NewMat()
	defer mat.Close()

	if ok := s.vc.Read(&mat); !ok {
		return captureResult{err: &CameraError{Kind: Disconnected, Device: s.dev.ID}}
	}
	if mat.Empty() {
		return captureResult{err: &CameraError{Kind: EmptyFrame, Device: s.dev.ID}}
	}
	return captureResult{frame: &Frame{
		Pix:      mat.ToBytes(),
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
	}}
}

func (s *gocvSource) Close() error {
	return s.vc.Close()
}
