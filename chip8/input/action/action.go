package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 hexadecimal keypad, in key order so that Key0+n is key n
	Key0 Action = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorReset
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action for logging and help screens.
type Info struct {
	Category    Category
	Description string
}

var emulatorInfo = map[Action]Info{
	EmulatorDebugToggle:      {CategoryEmulator, "toggle debug view"},
	EmulatorSnapshot:         {CategoryEmulator, "snapshot"},
	EmulatorPauseToggle:      {CategoryEmulator, "pause/resume"},
	EmulatorStepFrame:        {CategoryEmulator, "step frame"},
	EmulatorStepInstruction:  {CategoryEmulator, "step instruction"},
	EmulatorReset:            {CategoryEmulator, "reset"},
	EmulatorTestPatternCycle: {CategoryEmulator, "cycle test pattern"},
	EmulatorQuit:             {CategoryEmulator, "quit"},
	DebugLogLevelIncrease:    {CategoryDebug, "more logs"},
	DebugLogLevelDecrease:    {CategoryDebug, "fewer logs"},
}

// GetInfo returns the category and description of an action.
func GetInfo(act Action) Info {
	if key, ok := KeypadIndex(act); ok {
		return Info{Category: CategoryKeypad, Description: fmt.Sprintf("key %X", key)}
	}
	if info, ok := emulatorInfo[act]; ok {
		return info
	}
	return Info{Category: CategoryEmulator, Description: "unknown"}
}

// KeypadIndex returns the hexadecimal key an action stands for.
func KeypadIndex(act Action) (uint8, bool) {
	if act < Key0 || act > KeyF {
		return 0, false
	}
	return uint8(act - Key0), true
}

// ForKey returns the keypad action for a hexadecimal key index.
func ForKey(key uint8) Action {
	return Key0 + Action(key&0x0F)
}

func (a Action) String() string {
	return GetInfo(a).Description
}
