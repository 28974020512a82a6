package debug

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	// LastInstruction is the mnemonic of the most recently executed instruction.
	LastInstruction string
	Cycles          uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
	DebuggerHalted
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "RUNNING"
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	case DebuggerHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// Data contains all debug information needed by debug displays
type Data struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	Keys          [16]bool
	DebuggerState DebuggerState
	Frames        uint64
	// Fault is the error that halted the machine, empty while running.
	Fault string
	// TestPattern names the pattern on screen in test pattern mode.
	TestPattern string
}
