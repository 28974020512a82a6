package timing

import "time"

// TickerLimiter waits on a time.Ticker. Ticks missed while the loop is busy
// are dropped by the runtime, so it never bursts to catch up.
type TickerLimiter struct {
	ticker *time.Ticker
}

func NewTickerLimiter() *TickerLimiter {
	return &TickerLimiter{ticker: time.NewTicker(FrameDuration())}
}

func (t *TickerLimiter) WaitForNextFrame() { <-t.ticker.C }
func (t *TickerLimiter) Reset()            { t.ticker.Reset(FrameDuration()) }
func (t *TickerLimiter) Stop()             { t.ticker.Stop() }
