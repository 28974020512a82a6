package input

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/memory"
)

// DefaultKeyMap provides default key mappings that work across backends.
// The left hand side of a QWERTY keyboard stands in for the 4x4 hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyMap = map[string]action.Action{
	// Keypad
	"1": action.Key1,
	"2": action.Key2,
	"3": action.Key3,
	"4": action.KeyC,
	"q": action.Key4,
	"w": action.Key5,
	"e": action.Key6,
	"r": action.KeyD,
	"a": action.Key7,
	"s": action.Key8,
	"d": action.Key9,
	"f": action.KeyE,
	"z": action.KeyA,
	"x": action.Key0,
	"c": action.KeyB,
	"v": action.KeyF,

	// Emulator controls
	"Space":  action.EmulatorPauseToggle,
	"p":      action.EmulatorPauseToggle, // Alternative key
	"o":      action.EmulatorStepFrame,
	"n":      action.EmulatorStepInstruction,
	"i":      action.EmulatorStepInstruction, // Alternative key
	"F5":     action.EmulatorReset,
	"F9":     action.EmulatorSnapshot,
	"F10":    action.EmulatorDebugToggle,
	"F12":    action.EmulatorTestPatternCycle,
	"Escape": action.EmulatorQuit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}

// KeyForSymbol translates a host key name to a keypad key. Symbols outside
// the 4x4 block are not keypad keys.
func KeyForSymbol(symbol string) (memory.Key, bool) {
	act, ok := DefaultKeyMap[symbol]
	if !ok {
		return 0, false
	}
	key, ok := action.KeypadIndex(act)
	return memory.Key(key), ok
}
