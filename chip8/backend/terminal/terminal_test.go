package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

type fakeProvider struct{ data *debug.Data }

func (f fakeProvider) ExtractDebugData() *debug.Data { return f.data }

func newSimBackend(t *testing.T, cfg backend.BackendConfig) (*Backend, tcell.SimulationScreen, *time.Time) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	clock := time.Unix(1000, 0)
	b.now = func() time.Time { return clock }

	require.NoError(t, b.Init(cfg))
	screen.SetSize(120, 40)
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, screen, &clock
}

func cellAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestKeypadPressHoldRelease(t *testing.T) {
	b, screen, clock := newSimBackend(t, backend.BackendConfig{})
	frame := video.NewFrameBuffer()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Key0, Type: event.Press}}, events)

	// key repeat within the timeout keeps it held
	*clock = clock.Add(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Key0, Type: event.Hold}}, events)

	*clock = clock.Add(keyTimeout + time.Millisecond)
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Key0, Type: event.Release}}, events)
}

func TestControlKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want action.Action
	}{
		{"space pauses", tcell.KeyRune, ' ', action.EmulatorPauseToggle},
		{"n steps", tcell.KeyRune, 'n', action.EmulatorStepInstruction},
		{"F5 resets", tcell.KeyF5, 0, action.EmulatorReset},
		{"F9 snapshots", tcell.KeyF9, 0, action.EmulatorSnapshot},
		{"plus raises log level", tcell.KeyRune, '+', action.DebugLogLevelIncrease},
		{"escape quits", tcell.KeyEscape, 0, action.EmulatorQuit},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, action.EmulatorQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, screen, _ := newSimBackend(t, backend.BackendConfig{})
			screen.InjectKey(tt.key, tt.r, tcell.ModNone)

			events, err := b.Update(video.NewFrameBuffer())
			require.NoError(t, err)
			assert.Equal(t, []backend.InputEvent{{Action: tt.want, Type: event.Press}}, events)
		})
	}
}

func TestUpperCaseKeypad(t *testing.T) {
	b, screen, _ := newSimBackend(t, backend.BackendConfig{})
	screen.InjectKey(tcell.KeyRune, 'V', tcell.ModShift)

	events, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, action.KeyF, events[0].Action)
}

func TestRendersFrameAndPanels(t *testing.T) {
	data := &debug.Data{
		CPU: &debug.CPUState{PC: 0x200, I: 0x2AB, LastInstruction: "CLS"},
		Memory: &debug.MemorySnapshot{
			StartAddr: 0x200,
			Bytes:     []byte{0x00, 0xE0, 0x12, 0x00},
		},
		DebuggerState: debug.DebuggerPaused,
	}
	b, screen, _ := newSimBackend(t, backend.BackendConfig{
		ShowDebug:     true,
		DebugProvider: fakeProvider{data},
	})

	frame := video.NewFrameBuffer()
	frame.SetPixel(0, 0, true)
	frame.SetPixel(1, 1, true)
	frame.SetPixel(2, 0, true)
	frame.SetPixel(2, 1, true)

	_, err := b.Update(frame)
	require.NoError(t, err)

	assert.Equal(t, '▀', cellAt(screen, 0, 1))
	assert.Equal(t, '▄', cellAt(screen, 1, 1))
	assert.Equal(t, '█', cellAt(screen, 2, 1))
	assert.Equal(t, 'C', cellAt(screen, 2, 0), "title")
	assert.Equal(t, '│', cellAt(screen, width+1, 5))

	panelX := width + 3
	status := ""
	for x := panelX; x < panelX+14; x++ {
		status += string(cellAt(screen, x, 1))
	}
	assert.Equal(t, "Status: PAUSED", status)
	assert.Equal(t, '→', cellAt(screen, panelX, registerHeight+2))
}

func TestTooSmall(t *testing.T) {
	b, screen, _ := newSimBackend(t, backend.BackendConfig{})
	screen.SetSize(40, 10)

	_, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	assert.Equal(t, 'T', cellAt(screen, 0, 5))
}

func TestHandleAction(t *testing.T) {
	b, _, _ := newSimBackend(t, backend.BackendConfig{})

	b.HandleAction(action.EmulatorDebugToggle)
	assert.True(t, b.config.ShowDebug)

	assert.Equal(t, slog.LevelInfo, b.LogLevel())
	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, b.LogLevel())
	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, slog.LevelDebug, b.LogLevel(), "saturates")
	b.HandleAction(action.DebugLogLevelDecrease)
	b.HandleAction(action.DebugLogLevelDecrease)
	assert.Equal(t, slog.LevelWarn, b.LogLevel())
}

func TestTestPatternTitle(t *testing.T) {
	provider := fakeProvider{data: &debug.Data{TestPattern: "Stripes"}}
	b, screen, _ := newSimBackend(t, backend.BackendConfig{TestPattern: true, DebugProvider: provider})

	_, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)

	var title []rune
	for x := 1; x < 30; x++ {
		title = append(title, cellAt(screen, x, 0))
	}
	assert.Contains(t, string(title), "Test Pattern: Stripes")
}

func TestImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
	var _ backend.ActionHandler = (*Backend)(nil)
}
