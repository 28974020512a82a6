package input

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

// Manager routes actions: keypad actions go straight to the keypad latch,
// everything else goes to the callbacks registered with On.
type Manager struct {
	handlers map[action.Action]map[event.Type][]func()
	debounce *Handler
	keypad   *memory.Keypad
}

func NewManager(k *memory.Keypad) *Manager {
	return &Manager{
		handlers: make(map[action.Action]map[event.Type][]func()),
		debounce: NewHandler(),
		keypad:   k,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
// Keypad presses are never debounced, games poll them every frame.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := action.KeypadIndex(act); ok {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press, event.Hold:
			m.keypad.Press(memory.Key(key))
		case event.Release:
			m.keypad.Release(memory.Key(key))
		}
		return
	}

	if !m.debounce.ProcessEvent(act, evt) {
		slog.Debug("Debounced action", "action", act, "type", evt)
		return
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
