package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// TestPatternEmulator shows animated test patterns instead of running a
// program, for checking a backend's rendering.
type TestPatternEmulator struct {
	pattern *display.TestPattern
	limiter timing.Limiter
}

func NewTestPatternEmulator() *TestPatternEmulator {
	return &TestPatternEmulator{
		pattern: display.NewTestPattern(),
		limiter: timing.NewNoOpLimiter(),
	}
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.pattern.Advance()
	e.limiter.WaitForNextFrame()
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.pattern.Frame()
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.Data {
	return &debug.Data{
		DebuggerState: debug.DebuggerRunning,
		Frames:        uint64(e.pattern.Ticks()),
		TestPattern:   e.pattern.Name(),
	}
}

// Pattern returns the index of the pattern on screen.
func (e *TestPatternEmulator) Pattern() int {
	return e.pattern.Index()
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.pattern.Cycle()
	slog.Info("Switched to test pattern", "pattern", e.pattern.Name())
}

// SetFrameLimiter replaces the frame limiter, nil disables limiting.
func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	e.limiter = limiter
}
