package chip8_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// MockBackend returns scripted events, one batch per Update call, and
// asks to quit once the script runs out.
type MockBackend struct {
	script      [][]backend.InputEvent
	updateCalls int
	handled     []action.Action
	err         error
}

func (m *MockBackend) Init(config backend.BackendConfig) error { return nil }

func (m *MockBackend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	m.updateCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.updateCalls <= len(m.script) {
		return m.script[m.updateCalls-1], nil
	}
	return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
}

func (m *MockBackend) Cleanup() error { return nil }

func (m *MockBackend) HandleAction(act action.Action) {
	m.handled = append(m.handled, act)
}

var _ backend.ActionHandler = (*MockBackend)(nil)

func press(act action.Action) backend.InputEvent {
	return backend.InputEvent{Action: act, Type: event.Press}
}

func release(act action.Action) backend.InputEvent {
	return backend.InputEvent{Action: act, Type: event.Release}
}

func loopVM(t *testing.T, words ...byte) *chip8.VM {
	t.Helper()
	vm := chip8.New(chip8.Config{})
	require.NoError(t, vm.LoadProgram(words))
	return vm
}

func TestEventFlow(t *testing.T) {
	tests := []struct {
		name          string
		script        [][]backend.InputEvent
		expectedCalls int
		check         func(t *testing.T, vm *chip8.VM, mock *MockBackend)
	}{
		{
			name:          "quit event stops loop",
			script:        [][]backend.InputEvent{{press(action.EmulatorQuit)}},
			expectedCalls: 1,
		},
		{
			name:          "no events runs until the backend quits",
			script:        [][]backend.InputEvent{nil, nil, nil, nil},
			expectedCalls: 5,
			check: func(t *testing.T, vm *chip8.VM, _ *MockBackend) {
				assert.Equal(t, uint64(5), vm.Frames())
			},
		},
		{
			name: "keypad events reach the keypad",
			script: [][]backend.InputEvent{
				{press(action.KeyA), press(action.Key3), release(action.Key3)},
			},
			expectedCalls: 2,
			check: func(t *testing.T, vm *chip8.VM, _ *MockBackend) {
				assert.True(t, vm.Keypad().IsPressed(memory.KeyA))
				assert.False(t, vm.Keypad().IsPressed(memory.Key3))
			},
		},
		{
			name:          "pause toggle reaches the VM",
			script:        [][]backend.InputEvent{{press(action.EmulatorPauseToggle)}},
			expectedCalls: 2,
			check: func(t *testing.T, vm *chip8.VM, _ *MockBackend) {
				assert.Equal(t, debug.DebuggerPaused, vm.State())
				assert.Equal(t, uint64(1), vm.Frames(), "second frame was paused")
			},
		},
		{
			name: "backend features go to the backend",
			script: [][]backend.InputEvent{
				{press(action.EmulatorSnapshot), press(action.EmulatorDebugToggle), release(action.EmulatorSnapshot)},
			},
			expectedCalls: 2,
			check: func(t *testing.T, _ *chip8.VM, mock *MockBackend) {
				assert.Equal(t, []action.Action{action.EmulatorSnapshot, action.EmulatorDebugToggle}, mock.handled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := loopVM(t, 0x12, 0x00) // JP 0x200
			mock := &MockBackend{script: tt.script}

			require.NoError(t, chip8.Run(vm, mock))
			assert.Equal(t, tt.expectedCalls, mock.updateCalls)
			if tt.check != nil {
				tt.check(t, vm, mock)
			}
		})
	}
}

func TestEventFlow_TestPattern(t *testing.T) {
	emu := chip8.NewTestPatternEmulator()
	mock := &MockBackend{script: [][]backend.InputEvent{
		{press(action.EmulatorTestPatternCycle), press(action.KeyA)},
	}}

	require.NoError(t, chip8.Run(emu, mock))
	assert.Equal(t, 1, emu.Pattern())
	assert.Empty(t, mock.handled)
	assert.Equal(t, "Border", emu.ExtractDebugData().TestPattern)
}

func TestEventFlow_Halted(t *testing.T) {
	t.Run("halted machine keeps rendering", func(t *testing.T) {
		vm := loopVM(t, 0x00, 0xEE) // RET with an empty stack
		mock := &MockBackend{script: [][]backend.InputEvent{nil, nil}}

		require.NoError(t, chip8.Run(vm, mock))
		assert.Equal(t, 3, mock.updateCalls)
		assert.Equal(t, debug.DebuggerHalted, vm.State())
	})

	t.Run("stop on halt", func(t *testing.T) {
		vm := loopVM(t, 0x00, 0xEE)
		mock := &MockBackend{}

		err := chip8.Run(vm, mock, chip8.WithStopOnHalt())
		assert.ErrorIs(t, err, chip8.ErrHalted)
		assert.Equal(t, 0, mock.updateCalls)
	})

	t.Run("reset reruns the program", func(t *testing.T) {
		vm := loopVM(t, 0x00, 0xEE)
		mock := &MockBackend{script: [][]backend.InputEvent{{press(action.EmulatorReset)}}}

		require.NoError(t, chip8.Run(vm, mock))
		// the reset machine faults again on its next frame
		assert.Equal(t, debug.DebuggerHalted, vm.State())
		assert.Equal(t, 2, mock.updateCalls)
	})
}

func TestEventFlow_BackendError(t *testing.T) {
	boom := errors.New("boom")
	vm := loopVM(t, 0x12, 0x00)
	mock := &MockBackend{err: boom}

	err := chip8.Run(vm, mock)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, mock.updateCalls)
}

func TestLoop_Stop(t *testing.T) {
	vm := loopVM(t, 0x12, 0x00)
	mock := &MockBackend{}

	loop := chip8.NewLoop(vm, mock)
	loop.Stop()

	require.NoError(t, loop.Run())
	assert.Equal(t, 0, mock.updateCalls)
	assert.Equal(t, uint64(0), loop.Frames())
}
