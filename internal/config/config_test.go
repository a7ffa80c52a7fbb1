package config

import (
	"testing"
)

func TestCameraIDs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want []int
	}{
		{"unset falls back", "", []int{0, 1}},
		{"single id", "2", []int{2}},
		{"ordered list", "3, 0, 1", []int{3, 0, 1}},
		{"garbage falls back", "a,b", []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CAMERA_IDS", tt.env)
			got := CameraIDs([]int{0, 1})
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestIntervalSeconds(t *testing.T) {
	t.Setenv("RETINA_INTERVAL", "2.5")
	if got := IntervalSeconds(5); got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}

	t.Setenv("RETINA_INTERVAL", "-3")
	if got := IntervalSeconds(5); got != 5 {
		t.Errorf("negative interval: got %v, want fallback 5", got)
	}

	t.Setenv("RETINA_INTERVAL", "")
	if got := IntervalSeconds(5); got != 5 {
		t.Errorf("unset: got %v, want fallback 5", got)
	}
}
