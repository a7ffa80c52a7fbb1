package retina

import "math"

// Qualia is the lightweight sensory metadata derived from a captured frame.
type Qualia struct {
	// Brightness is the normalized mean luminance of the frame, in [0,1].
	Brightness float64 `json:"brightness"`

	// Motion is the normalized mean absolute luminance difference from the
	// previous frame, in [0,1]. Zero when there is no usable predecessor.
	Motion float64 `json:"motion"`
}

// ComputeQualia derives brightness and motion for cur against prev.
//
// prev may be nil (first frame). A predecessor of different geometry is
// treated as absent rather than an error, since failover may change the
// capture resolution.
func ComputeQualia(cur, prev *Frame) Qualia {
	var q Qualia
	if cur.Empty() {
		return q
	}

	n := cur.pixels()
	diffable := cur.SameSize(prev) && !prev.Empty()

	var lumaSum, diffSum float64
	for i := 0; i < n; i++ {
		l := cur.lumaAt(i)
		lumaSum += l
		if diffable {
			diffSum += math.Abs(l - prev.lumaAt(i))
		}
	}

	q.Brightness = lumaSum / float64(n) / 255.0
	if diffable {
		q.Motion = diffSum / float64(n) / 255.0
	}
	return q
}
