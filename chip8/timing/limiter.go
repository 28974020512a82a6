package timing

import (
	"fmt"
	"strings"
	"time"
)

// TimerFrequency is the rate the delay and sound timers count down at.
// One emulated frame is one timer tick.
const TimerFrequency = 60

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Second / TimerFrequency
}

// Limiter paces the host loop so frames, and with them the timers, advance
// at TimerFrequency.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due. It returns
	// immediately when the loop is behind.
	WaitForNextFrame()

	// Reset drops any accumulated schedule, e.g. after a pause.
	Reset()
}

// Pacing names the limiters selectable from the command line.
const (
	PacingAdaptive = "adaptive"
	PacingTicker   = "ticker"
	PacingNone     = "none"
)

// New returns the limiter for a pacing name. An empty name selects the
// adaptive limiter.
func New(pacing string) (Limiter, error) {
	switch strings.ToLower(pacing) {
	case PacingAdaptive, "":
		return NewAdaptiveLimiter(), nil
	case PacingTicker:
		return NewTickerLimiter(), nil
	case PacingNone:
		return NewNoOpLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown pacing %q (want adaptive, ticker or none)", pacing)
	}
}

// Stop releases resources held by a limiter, if it holds any.
func Stop(l Limiter) {
	if s, ok := l.(interface{ Stop() }); ok {
		s.Stop()
	}
}

// NewNoOpLimiter returns a limiter that never waits, for headless runs and tests.
func NewNoOpLimiter() Limiter {
	return noOpLimiter{}
}

type noOpLimiter struct{}

func (noOpLimiter) WaitForNextFrame() {}
func (noOpLimiter) Reset()            {}
