package capture

import (
	"fmt"
	"time"
)

// Bounds of the animation frame capture window.
const (
	minCaptureWindow = 5 * time.Second
	maxCaptureWindow = 30 * time.Second
)

// CaptureWindow sizes the animation capture: the longest detected
// animation or the configured minimum, whichever is larger, clamped to
// [5s, 30s].
func CaptureWindow(longest, minimum time.Duration) time.Duration {
	w := max(longest, minimum)
	return min(max(w, minCaptureWindow), maxCaptureWindow)
}

// FrameSchedule returns the capture offsets for interval screenshots: 0,
// interval, 2*interval, ... up to and including window.
func FrameSchedule(window, interval time.Duration) []time.Duration {
	if interval <= 0 {
		return []time.Duration{0}
	}
	n := int(window/interval) + 1
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = time.Duration(i) * interval
	}
	return out
}

// frameName is the file name of the interval frame taken at offset.
// Whole seconds keep the short form; other offsets are named in
// milliseconds so sub-second schedules do not collide.
func frameName(offset time.Duration) string {
	if offset%time.Second == 0 {
		return fmt.Sprintf("frame_%03ds.png", int(offset/time.Second))
	}
	return fmt.Sprintf("frame_%06dms.png", offset.Milliseconds())
}

// heroFrameName is the file name of the i-th screencast frame.
func heroFrameName(i int) string {
	return fmt.Sprintf("hero_frame_%04d.png", i)
}
