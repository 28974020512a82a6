package chip8

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// DefaultInstructionsPerFrame is how many instructions run between two timer ticks.
const DefaultInstructionsPerFrame = 10

const (
	debugMemoryBefore = 16
	debugMemoryWindow = 48
)

// ErrHalted is returned by a VM that stopped on a fault, until it is reset.
var ErrHalted = errors.New("machine halted")

// FaultPolicy decides what the VM does when an instruction faults.
type FaultPolicy int

const (
	// FaultHalt stops the machine on any fault.
	FaultHalt FaultPolicy = iota
	// FaultSkip logs recoverable faults and keeps going. Fatal faults still halt.
	FaultSkip
)

func (p FaultPolicy) String() string {
	switch p {
	case FaultHalt:
		return "halt"
	case FaultSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseFaultPolicy converts a policy name ("halt" or "skip") to a FaultPolicy.
func ParseFaultPolicy(name string) (FaultPolicy, error) {
	switch strings.ToLower(name) {
	case "", "halt":
		return FaultHalt, nil
	case "skip":
		return FaultSkip, nil
	default:
		return FaultHalt, fmt.Errorf("unknown fault policy %q (want halt or skip)", name)
	}
}

// Config holds the host side settings of a VM. The zero value is usable.
// A non-zero Seed makes RND deterministic. A nil Logger means the slog default.
type Config struct {
	InstructionsPerFrame int
	FaultPolicy          FaultPolicy
	Seed                 uint64
	Beeper               audio.Beeper
	Limiter              timing.Limiter
	Logger               *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.InstructionsPerFrame <= 0 {
		c.InstructionsPerFrame = DefaultInstructionsPerFrame
	}
	if c.Beeper == nil {
		c.Beeper = audio.NewNopBeeper()
	}
	if c.Limiter == nil {
		c.Limiter = timing.NewNoOpLimiter()
	}
	return c
}

// VM owns a complete machine: CPU, memory, screen and keypad, plus the
// debugger state the host drives through HandleAction.
type VM struct {
	cfg Config

	cpu    *cpu.CPU
	mem    *memory.Memory
	screen *video.FrameBuffer
	keypad *memory.Keypad

	program []byte
	state   debug.DebuggerState
	fault   error
	frames  uint64
}

// New returns a VM with empty program memory.
func New(cfg Config) *VM {
	cfg = cfg.withDefaults()
	v := &VM{
		cfg:    cfg,
		mem:    memory.New(),
		screen: video.NewFrameBuffer(),
		keypad: memory.NewKeypad(),
	}
	v.cpu = v.newCPU()
	return v
}

// NewWithFile creates a VM and loads the program image at path.
func NewWithFile(path string, cfg Config) (*VM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM %s: %w", path, err)
	}

	v := New(cfg)
	if err := v.LoadProgram(data); err != nil {
		return nil, fmt.Errorf("failed to load ROM %s: %w", path, err)
	}

	v.log().Info("ROM loaded", "path", path, "size", len(data))
	return v, nil
}

func (v *VM) newCPU() *cpu.CPU {
	opts := []cpu.Option{cpu.WithBeepHandler(v.cfg.Beeper.Beep)}
	if v.cfg.Logger != nil {
		opts = append(opts, cpu.WithLogger(v.cfg.Logger))
	}
	if v.cfg.Seed != 0 {
		opts = append(opts, cpu.WithRand(rand.New(rand.NewPCG(v.cfg.Seed, v.cfg.Seed))))
	}
	return cpu.New(v.mem, v.screen, v.keypad, opts...)
}

// LoadProgram copies program into memory at 0x200 and resets the machine.
// The image is kept so that Reset can reload it.
func (v *VM) LoadProgram(program []byte) error {
	if len(program) > memory.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", memory.ErrProgramTooLarge, len(program), memory.MaxProgramSize)
	}
	v.program = append([]byte(nil), program...)
	return v.Reset()
}

// Reset brings the machine back to power-on state with the last loaded program.
func (v *VM) Reset() error {
	v.mem.Reset()
	if err := v.mem.LoadProgram(v.program); err != nil {
		return err
	}
	v.screen.Clear()
	v.keypad.Reset()
	v.cpu = v.newCPU()

	v.state = debug.DebuggerRunning
	v.fault = nil
	v.frames = 0
	v.cfg.Limiter.Reset()
	return nil
}

// RunUntilFrame runs one frame according to the debugger state and waits
// on the frame limiter. A running frame executes InstructionsPerFrame
// instructions and ticks the timers once.
func (v *VM) RunUntilFrame() error {
	defer v.cfg.Limiter.WaitForNextFrame()

	switch v.state {
	case debug.DebuggerHalted:
		return v.haltedError()
	case debug.DebuggerPaused:
		return nil
	case debug.DebuggerStepInstruction:
		v.state = debug.DebuggerPaused
		return v.Step()
	case debug.DebuggerStepFrame:
		v.state = debug.DebuggerPaused
	}

	return v.runFrame()
}

// Step executes a single instruction. Timers are not ticked, they only
// advance once per frame.
func (v *VM) Step() error {
	if v.state == debug.DebuggerHalted {
		return v.haltedError()
	}
	return v.exec()
}

func (v *VM) runFrame() error {
	for range v.cfg.InstructionsPerFrame {
		if err := v.exec(); err != nil {
			return err
		}
	}
	v.cpu.TickTimers()
	v.frames++
	return nil
}

func (v *VM) exec() error {
	err := v.cpu.Exec()
	if err == nil {
		return nil
	}

	if v.cfg.FaultPolicy == FaultSkip && !cpu.IsFatal(err) {
		v.logFault(slog.LevelWarn, "Skipping faulted instruction", err)
		return nil
	}

	v.logFault(slog.LevelError, "Machine halted", err)
	v.fault = err
	v.state = debug.DebuggerHalted
	return v.haltedError()
}

// log returns the configured logger or the current slog default.
func (v *VM) log() *slog.Logger {
	if v.cfg.Logger != nil {
		return v.cfg.Logger
	}
	return slog.Default()
}

func (v *VM) haltedError() error {
	return fmt.Errorf("%w: %w", ErrHalted, v.fault)
}

func (v *VM) logFault(level slog.Level, msg string, err error) {
	var fault *cpu.Fault
	if errors.As(err, &fault) {
		v.log().Log(context.Background(), level, msg,
			"pc", fmt.Sprintf("0x%03X", fault.PC),
			"opcode", fmt.Sprintf("0x%04X", fault.Instruction.Raw),
			"error", fault.Err)
		return
	}
	v.log().Log(context.Background(), level, msg, "error", err)
}

// HandleAction applies a host action. Keypad actions set the key state,
// emulator controls drive the debugger and are applied on press only.
func (v *VM) HandleAction(act action.Action, pressed bool) {
	if key, ok := action.KeypadIndex(act); ok {
		v.keypad.Set(memory.Key(key), pressed)
		return
	}
	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		switch v.state {
		case debug.DebuggerRunning:
			v.state = debug.DebuggerPaused
			v.log().Info("Paused")
		case debug.DebuggerHalted:
			// only a reset leaves the halted state
		default:
			v.state = debug.DebuggerRunning
			v.cfg.Limiter.Reset()
			v.log().Info("Resumed")
		}
	case action.EmulatorStepInstruction:
		if v.state != debug.DebuggerHalted {
			v.state = debug.DebuggerStepInstruction
		}
	case action.EmulatorStepFrame:
		if v.state != debug.DebuggerHalted {
			v.state = debug.DebuggerStepFrame
		}
	case action.EmulatorReset:
		if err := v.Reset(); err != nil {
			v.log().Error("Reset failed", "error", err)
			return
		}
		v.log().Info("Reset")
	}
}

func (v *VM) GetCurrentFrame() *video.FrameBuffer {
	return v.screen
}

// PixelCoordinates returns the (row, col) pairs of all lit pixels.
func (v *VM) PixelCoordinates() []video.Coordinate {
	return v.screen.PixelCoordinates()
}

// ExtractDebugData captures registers, the memory around PC and the keypad.
func (v *VM) ExtractDebugData() *debug.Data {
	c := v.cpu
	pc := c.GetPC()

	var start uint16
	if pc > debugMemoryBefore {
		start = pc - debugMemoryBefore
	}

	state := &debug.CPUState{
		V:          c.GetRegisters(),
		I:          c.GetIndex(),
		PC:         pc,
		SP:         c.GetSP(),
		Stack:      c.GetStack(),
		DelayTimer: c.GetDelayTimer(),
		SoundTimer: c.GetSoundTimer(),
		Cycles:     c.GetCycles(),
	}
	if c.GetCycles() > 0 {
		state.LastInstruction = c.GetLastInstruction().String()
	}

	data := &debug.Data{
		CPU: state,
		Memory: &debug.MemorySnapshot{
			StartAddr: start,
			Bytes:     v.mem.Snapshot(start, debugMemoryWindow),
		},
		Keys:          v.keypad.State(),
		DebuggerState: v.state,
		Frames:        v.frames,
	}
	if v.fault != nil {
		data.Fault = v.fault.Error()
	}
	return data
}

// SetFrameLimiter replaces the frame limiter, nil disables limiting.
func (v *VM) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	v.cfg.Limiter = limiter
}

func (v *VM) Keypad() *memory.Keypad     { return v.keypad }
func (v *VM) CPU() *cpu.CPU              { return v.cpu }
func (v *VM) Memory() *memory.Memory     { return v.mem }
func (v *VM) State() debug.DebuggerState { return v.state }
func (v *VM) Fault() error               { return v.fault }
func (v *VM) Frames() uint64             { return v.frames }
func (v *VM) InstructionsPerFrame() int  { return v.cfg.InstructionsPerFrame }
func (v *VM) FaultPolicy() FaultPolicy   { return v.cfg.FaultPolicy }
