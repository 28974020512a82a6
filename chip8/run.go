package chip8

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

// emulatorActions are forwarded to Emulator.HandleAction.
var emulatorActions = []action.Action{
	action.EmulatorPauseToggle,
	action.EmulatorStepFrame,
	action.EmulatorStepInstruction,
	action.EmulatorReset,
	action.EmulatorTestPatternCycle,
}

// backendActions are forwarded to backends implementing backend.ActionHandler.
var backendActions = []action.Action{
	action.EmulatorSnapshot,
	action.EmulatorDebugToggle,
	action.DebugLogLevelIncrease,
	action.DebugLogLevelDecrease,
}

// Loop ties an emulator to a backend: run a frame, hand it to the backend,
// route the input events it returns, repeat.
type Loop struct {
	emu     Emulator
	backend backend.Backend
	manager *input.Manager

	ownsKeypad bool
	stopOnHalt bool
	stopped    atomic.Bool
	frames     uint64
}

type LoopOption func(*Loop)

// WithStopOnHalt makes Run return the halt error instead of idling until
// the user resets or quits. Used for unattended runs.
func WithStopOnHalt() LoopOption { return func(l *Loop) { l.stopOnHalt = true } }

// NewLoop wires emu and b together. Keypad events go to the emulator's
// keypad, emulator controls to emu.HandleAction and backend features to the
// backend itself. The backend must already be initialized.
func NewLoop(emu Emulator, b backend.Backend, opts ...LoopOption) *Loop {
	var keypad *memory.Keypad
	if owner, ok := emu.(interface{ Keypad() *memory.Keypad }); ok {
		keypad = owner.Keypad()
	}

	l := &Loop{
		emu:        emu,
		backend:    b,
		manager:    input.NewManager(keypad),
		ownsKeypad: keypad != nil,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.manager.On(action.EmulatorQuit, event.Press, l.Stop)
	for _, act := range emulatorActions {
		l.manager.On(act, event.Press, func() { emu.HandleAction(act, true) })
	}
	if handler, ok := b.(backend.ActionHandler); ok {
		for _, act := range backendActions {
			l.manager.On(act, event.Press, func() { handler.HandleAction(act) })
		}
	}
	return l
}

// Stop makes Run return after the current frame. Safe to call from any goroutine.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Frames returns the number of loop iterations completed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run loops until Stop is called, a quit action arrives, or the emulator or
// backend return an error. A halted machine keeps being displayed so that
// its state can be inspected, unless WithStopOnHalt was given.
func (l *Loop) Run() error {
	halted := false
	for !l.stopped.Load() {
		if err := l.emu.RunUntilFrame(); err != nil {
			if !errors.Is(err, ErrHalted) || l.stopOnHalt {
				return err
			}
			if !halted {
				slog.Warn("Emulation halted, reset or quit", "error", err)
				halted = true
			}
		} else {
			halted = false
		}

		events, err := l.backend.Update(l.emu.GetCurrentFrame())
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}
		for _, evt := range events {
			l.dispatch(evt)
		}
		l.frames++
	}
	return nil
}

func (l *Loop) dispatch(evt backend.InputEvent) {
	if _, ok := action.KeypadIndex(evt.Action); ok && !l.ownsKeypad {
		l.emu.HandleAction(evt.Action, evt.Type != event.Release)
		return
	}
	l.manager.Trigger(evt.Action, evt.Type)
}

// Run drives emu and b until quit. See Loop.
func Run(emu Emulator, b backend.Backend, opts ...LoopOption) error {
	return NewLoop(emu, b, opts...).Run()
}
