package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestHandler_Debouncing(t *testing.T) {
	tests := []struct {
		name           string
		action         action.Action
		eventType      event.Type
		timeBetween    time.Duration
		expectDebounce bool
	}{
		{
			name:           "UI action rapid press - should debounce",
			action:         action.EmulatorDebugToggle,
			eventType:      event.Press,
			timeBetween:    100 * time.Millisecond,
			expectDebounce: true,
		},
		{
			name:           "UI action slow press - should not debounce",
			action:         action.EmulatorDebugToggle,
			eventType:      event.Press,
			timeBetween:    400 * time.Millisecond,
			expectDebounce: false,
		},
		{
			name:           "UI action release event - should not debounce",
			action:         action.EmulatorPauseToggle,
			eventType:      event.Release,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: false,
		},
		{
			name:           "Hold event type - should not debounce",
			action:         action.EmulatorDebugToggle,
			eventType:      event.Hold,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler()
			clock := time.Unix(1000, 0)
			handler.now = func() time.Time { return clock }

			assert.True(t, handler.ProcessEvent(tt.action, tt.eventType), "First event should always pass")

			clock = clock.Add(tt.timeBetween)
			result := handler.ProcessEvent(tt.action, tt.eventType)

			if tt.expectDebounce {
				assert.False(t, result, "Second event should be debounced")
			} else {
				assert.True(t, result, "Second event should not be debounced")
			}
		})
	}
}

func TestDefaultKeyMap(t *testing.T) {
	tests := []struct {
		symbol string
		key    memory.Key
	}{
		{"1", memory.Key1}, {"2", memory.Key2}, {"3", memory.Key3}, {"4", memory.KeyC},
		{"q", memory.Key4}, {"w", memory.Key5}, {"e", memory.Key6}, {"r", memory.KeyD},
		{"a", memory.Key7}, {"s", memory.Key8}, {"d", memory.Key9}, {"f", memory.KeyE},
		{"z", memory.KeyA}, {"x", memory.Key0}, {"c", memory.KeyB}, {"v", memory.KeyF},
	}

	seen := map[memory.Key]bool{}
	for _, tt := range tests {
		key, ok := KeyForSymbol(tt.symbol)
		assert.True(t, ok, tt.symbol)
		assert.Equal(t, tt.key, key, tt.symbol)
		seen[key] = true
	}
	assert.Len(t, seen, memory.KeyCount, "all 16 keys reachable")

	_, ok := KeyForSymbol("Escape")
	assert.False(t, ok, "emulator controls are not keypad keys")
	_, ok = KeyForSymbol("5")
	assert.False(t, ok)
}

func TestManager_RoutesKeypadActions(t *testing.T) {
	keypad := memory.NewKeypad()
	m := NewManager(keypad)

	m.Trigger(action.KeyC, event.Press)
	assert.True(t, keypad.IsPressed(memory.KeyC))

	// repeated presses are not debounced
	m.Trigger(action.KeyC, event.Release)
	m.Trigger(action.KeyC, event.Press)
	assert.True(t, keypad.IsPressed(memory.KeyC))

	m.Trigger(action.KeyC, event.Release)
	assert.False(t, keypad.IsPressed(memory.KeyC))

	m.Trigger(action.Key0, event.Hold)
	assert.True(t, keypad.IsPressed(memory.Key0))
}

func TestManager_Callbacks(t *testing.T) {
	m := NewManager(memory.NewKeypad())
	clock := time.Unix(1000, 0)
	m.debounce.now = func() time.Time { return clock }

	pauses := 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { pauses++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, pauses, "second press debounced")

	clock = clock.Add(time.Second)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 2, pauses)

	// no handler registered, nothing happens
	m.Trigger(action.EmulatorQuit, event.Press)
}

func TestActionInfo(t *testing.T) {
	info := action.GetInfo(action.KeyA)
	assert.Equal(t, action.CategoryKeypad, info.Category)
	assert.Equal(t, "key A", info.Description)

	assert.Equal(t, action.CategoryDebug, action.GetInfo(action.DebugLogLevelIncrease).Category)
	assert.Equal(t, action.CategoryEmulator, action.GetInfo(action.EmulatorQuit).Category)

	assert.Equal(t, action.KeyF, action.ForKey(0xF))
	_, ok := action.KeypadIndex(action.EmulatorQuit)
	assert.False(t, ok)
}
