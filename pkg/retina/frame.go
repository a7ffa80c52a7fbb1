package retina

// Frame is a raw captured image: packed pixel bytes plus geometry.
// Pixel order is BGR for 3-channel frames (what the capture backend delivers)
// or a single luminance plane for 1-channel frames.
//
// A frame is immutable once produced. It is owned by whichever observation
// currently holds it and is dropped when that observation is overwritten.
type Frame struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Empty reports whether the frame carries no pixel data.
func (f *Frame) Empty() bool {
	return f == nil || len(f.Pix) == 0
}

// SameSize reports whether two frames have identical geometry.
// Failover can change the capture resolution mid-stream, so motion
// analysis checks this before differencing.
func (f *Frame) SameSize(o *Frame) bool {
	if f == nil || o == nil {
		return false
	}
	return f.Width == o.Width && f.Height == o.Height && f.Channels == o.Channels
}

// pixels is the number of addressable pixels.
func (f *Frame) pixels() int {
	if f == nil {
		return 0
	}
	return f.Width * f.Height
}

// lumaAt returns the luminance of pixel i in [0,255].
// Uses ITU-R 601 weights for BGR frames, matching OpenCV's grayscale conversion.
func (f *Frame) lumaAt(i int) float64 {
	switch f.Channels {
	case 1:
		return float64(f.Pix[i])
	case 3, 4:
		base := i * f.Channels
		b := float64(f.Pix[base])
		g := float64(f.Pix[base+1])
		r := float64(f.Pix[base+2])
		return 0.114*b + 0.587*g + 0.299*r
	}
	return 0
}
