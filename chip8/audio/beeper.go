package audio

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Beeper plays the buzzer when the sound timer expires.
type Beeper interface {
	Beep()
	Close() error
}

// LogBeeper is a silent beeper that logs every beep.
// Handy for headless runs and for checking when a program makes sound.
type LogBeeper struct {
	logger *slog.Logger
	level  slog.Level
	count  atomic.Uint64
}

type LogBeeperOption func(*LogBeeper)

// WithLogger sets the logger beeps are written to, the slog default otherwise.
func WithLogger(l *slog.Logger) LogBeeperOption { return func(b *LogBeeper) { b.logger = l } }

// WithLevel sets the level beeps are logged at.
func WithLevel(level slog.Level) LogBeeperOption { return func(b *LogBeeper) { b.level = level } }

func NewLogBeeper(opts ...LogBeeperOption) *LogBeeper {
	b := &LogBeeper{level: slog.LevelDebug}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *LogBeeper) Beep() {
	n := b.count.Add(1)
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), b.level, "beep", "count", n)
}

// Count returns how many beeps have been played.
func (b *LogBeeper) Count() uint64 {
	return b.count.Load()
}

func (b *LogBeeper) Close() error {
	return nil
}

type nopBeeper struct{}

// NewNopBeeper returns a beeper that does nothing.
func NewNopBeeper() Beeper { return nopBeeper{} }

func (nopBeeper) Beep()        {}
func (nopBeeper) Close() error { return nil }
