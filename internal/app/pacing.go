package app

import "time"

// FrameDelay returns how long to wait after a frame that took elapsed so
// the loop runs at no more than limit frames per second. A limit of zero
// or less disables pacing.
func FrameDelay(limit int, elapsed time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	budget := time.Second / time.Duration(limit)
	return max(0, budget-elapsed)
}
