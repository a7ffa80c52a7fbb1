package retina

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// EncodeFunc serializes a frame to a transport-friendly still image.
// Encoding happens at read/serialization time, not at capture time.
type EncodeFunc func(*Frame) ([]byte, error)

// EncodeJPEG encodes a frame as JPEG via OpenCV.
func EncodeJPEG(f *Frame) ([]byte, error) {
	if f.Empty() {
		return nil, errors.New("retina: encode empty frame")
	}
	matType, err := matTypeFor(f.Channels)
	if err != nil {
		return nil, err
	}

	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, matType, f.Pix)
	if err != nil {
		return nil, fmt.Errorf("retina: rebuild mat: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("retina: jpeg encode: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func matTypeFor(channels int) (gocv.MatType, error) {
	switch channels {
	case 1:
		return gocv.MatTypeCV8UC1, nil
	case 3:
		return gocv.MatTypeCV8UC3, nil
	case 4:
		return gocv.MatTypeCV8UC4, nil
	}
	return 0, fmt.Errorf("retina: unsupported channel count %d", channels)
}
