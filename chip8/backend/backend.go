package backend

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// InputEvent is a host input translated to an action.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete emulator platform (rendering + input + audio)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, window, nothing at all)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, test patterns, debug panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the provided frame and returns the input events
	// collected since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// ActionHandler is implemented by backends that react to emulator
// actions themselves, e.g. snapshots or the debug panel toggle.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// DebugDataProvider gives backends read access to machine state.
type DebugDataProvider interface {
	ExtractDebugData() *debug.Data
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Scale         int
	ShowDebug     bool              // Backends may ignore unsupported features
	TestPattern   bool              // Display test pattern instead of emulation
	Callbacks     BackendCallbacks  // Callbacks for backend communication
	DebugProvider DebugDataProvider // Optional, enables register and disassembly panels
}

// BackendCallbacks allows backends to communicate with the emulator
type BackendCallbacks struct {
	// Control callbacks
	OnQuit func() // Backend requests shutdown (e.g., window close)

	// Debug callbacks (optional)
	OnDebugMessage func(message string) // Backend can send debug info to emulator
}
