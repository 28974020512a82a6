package timing

import (
	"log/slog"
	"time"
)

const (
	// spinWindow is the tail of each frame spent busy-waiting, sleep is too
	// coarse below it.
	spinWindow = time.Millisecond
	// maxLag is how far behind the schedule may fall before it is dropped.
	maxLag = 5 * time.Millisecond
	// maxDrift triggers a correction at the once-per-second check.
	maxDrift = 10 * time.Millisecond
)

// AdaptiveLimiter sleeps for most of a frame and spins for the rest, so the
// 60 Hz timers stay close to wall-clock time.
type AdaptiveLimiter struct {
	period   time.Duration
	deadline time.Time
	frames   uint64

	clock func() time.Time
	sleep func(time.Duration)
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return &AdaptiveLimiter{
		period:   FrameDuration(),
		deadline: time.Now(),
		clock:    time.Now,
		sleep:    time.Sleep,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.clock()
	switch remaining := a.deadline.Sub(now); {
	case remaining > 0:
		a.waitUntil(remaining)
	case remaining < -maxLag:
		// far behind, e.g. the window was dragged: start a fresh schedule
		a.deadline = now
	}

	a.deadline = a.deadline.Add(a.period)
	a.frames++

	if a.frames%TimerFrequency == 0 {
		a.correctDrift()
	}
}

func (a *AdaptiveLimiter) waitUntil(remaining time.Duration) {
	if remaining > 2*spinWindow {
		a.sleep(remaining - spinWindow)
	}
	for a.clock().Before(a.deadline) {
	}
}

func (a *AdaptiveLimiter) correctDrift() {
	drift := a.clock().Sub(a.deadline)
	if drift.Abs() <= maxDrift {
		return
	}
	a.deadline = a.deadline.Add(drift / 10)
	slog.Debug("Frame pacing drift corrected", "drift_ms", drift.Milliseconds(), "frames", a.frames)
}

func (a *AdaptiveLimiter) Reset() {
	a.deadline = a.clock()
	a.frames = 0
}

// Frames returns the number of frames paced since the last Reset.
func (a *AdaptiveLimiter) Frames() uint64 {
	return a.frames
}
