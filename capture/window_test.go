package capture

import (
	"testing"
	"time"
)

func TestCaptureWindow(t *testing.T) {
	tests := []struct {
		name    string
		longest time.Duration
		minimum time.Duration
		want    time.Duration
	}{
		{"minimum wins", 3 * time.Second, 25 * time.Second, 25 * time.Second},
		{"longest wins", 28 * time.Second, 25 * time.Second, 28 * time.Second},
		{"clamped high", 90 * time.Second, 25 * time.Second, 30 * time.Second},
		{"clamped low", time.Second, 0, 5 * time.Second},
		{"no animations", 0, 10 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaptureWindow(tt.longest, tt.minimum); got != tt.want {
				t.Errorf("CaptureWindow(%v, %v) = %v, want %v", tt.longest, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestFrameSchedule(t *testing.T) {
	got := FrameSchedule(25*time.Second, 2*time.Second)
	if len(got) != 13 {
		t.Fatalf("len = %d, want 13", len(got))
	}
	if got[0] != 0 || got[12] != 24*time.Second {
		t.Errorf("schedule = %v..%v, want 0s..24s", got[0], got[12])
	}

	if got := FrameSchedule(5*time.Second, 0); len(got) != 1 {
		t.Errorf("zero interval: len = %d, want 1", len(got))
	}
}

func TestFrameNames(t *testing.T) {
	if got := frameName(4 * time.Second); got != "frame_004s.png" {
		t.Errorf("frameName = %q", got)
	}
	if got := frameName(1500 * time.Millisecond); got != "frame_001500ms.png" {
		t.Errorf("frameName = %q", got)
	}
	if got := heroFrameName(12); got != "hero_frame_0012.png" {
		t.Errorf("heroFrameName = %q", got)
	}
}

func TestFrameNames_Unique(t *testing.T) {
	tests := []struct {
		name     string
		window   time.Duration
		interval time.Duration
	}{
		{"whole seconds", 25 * time.Second, 2 * time.Second},
		{"half second", 5 * time.Second, 500 * time.Millisecond},
		{"odd milliseconds", 5 * time.Second, 333 * time.Millisecond},
		{"one and a half", 10 * time.Second, 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[string]time.Duration{}
			for _, off := range FrameSchedule(tt.window, tt.interval) {
				n := frameName(off)
				if prev, ok := seen[n]; ok {
					t.Fatalf("%q produced by %v and %v", n, prev, off)
				}
				seen[n] = off
			}
		})
	}
}
