package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	RegisterCount = 16
	StackSize     = 16
	flagRegister  = 0xF
)

// CPU holds the interpreter state: registers, index, program counter,
// call stack and the two timers. Memory, screen and keypad are owned by
// the machine and shared with the CPU.
type CPU struct {
	v     [RegisterCount]uint8
	index uint16
	pc    uint16
	stack [StackSize]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	// metadata
	last   Instruction
	cycles uint64

	mem    *memory.Memory
	screen *video.FrameBuffer
	keypad *memory.Keypad

	rng    *rand.Rand
	onBeep func()
	logger *slog.Logger
}

// Option configures optional CPU collaborators.
type Option func(*CPU)

// WithRand sets the random source used by RND. Useful for deterministic runs.
func WithRand(r *rand.Rand) Option { return func(c *CPU) { c.rng = r } }

// WithBeepHandler sets the function called when the sound timer expires.
func WithBeepHandler(fn func()) Option { return func(c *CPU) { c.onBeep = fn } }

// WithLogger sets the logger used for instruction tracing. Without it the
// current slog default is used.
func WithLogger(l *slog.Logger) Option { return func(c *CPU) { c.logger = l } }

// New returns a CPU in its power-on state, wired to the given components.
func New(mem *memory.Memory, screen *video.FrameBuffer, keypad *memory.Keypad, opts ...Option) *CPU {
	c := &CPU{
		mem:    mem,
		screen: screen,
		keypad: keypad,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.Reset()
	return c
}

// Reset restores registers, stack and timers to their power-on values.
// Memory, screen and keypad are left untouched.
func (c *CPU) Reset() {
	c.v = [RegisterCount]uint8{}
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.index = 0
	c.pc = memory.ProgramStart
	c.delayTimer = 0
	c.soundTimer = 0
	c.last = Instruction{}
	c.cycles = 0
}

// Exec fetches, decodes and executes a single instruction without ticking the timers.
// The program counter is advanced past the instruction before it executes.
func (c *CPU) Exec() error {
	pc := c.pc
	raw, err := c.mem.Slice(pc, 2)
	if err != nil {
		return &Fault{PC: pc, Err: fmt.Errorf("%w: %w", ErrPCOutOfRange, err)}
	}

	in := Decode(raw[0], raw[1])
	c.last = in
	c.pc += 2
	c.cycles++

	if logger := c.log(); logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("exec", "pc", fmt.Sprintf("0x%03X", pc), "opcode", fmt.Sprintf("0x%04X", in.Raw), "instr", in.String())
	}

	if err := c.execute(in); err != nil {
		return &Fault{PC: pc, Instruction: in, Err: err}
	}
	return nil
}

// Cycle runs one full instruction cycle: Exec followed by a timer tick.
// Timers tick even if the instruction faulted.
func (c *CPU) Cycle() error {
	err := c.Exec()
	c.TickTimers()
	return err
}

// RunFrame executes n instructions and then ticks the timers once.
// It stops at the first fault, in which case timers are not ticked.
func (c *CPU) RunFrame(n int) error {
	for range n {
		if err := c.Exec(); err != nil {
			return err
		}
	}
	c.TickTimers()
	return nil
}

// TickTimers decrements both timers, saturating at zero. The beep handler is
// called when the sound timer goes from 1 to 0.
func (c *CPU) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}

	if c.soundTimer > 0 {
		if c.soundTimer == 1 && c.onBeep != nil {
			c.onBeep()
		}
		c.soundTimer--
	}
}

func (c *CPU) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

func (c *CPU) setFlag(condition bool) {
	c.v[flagRegister] = 0
	if condition {
		c.v[flagRegister] = 1
	}
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

func (c *CPU) GetPC() uint16                      { return c.pc }
func (c *CPU) GetIndex() uint16                   { return c.index }
func (c *CPU) GetSP() uint8                       { return c.sp }
func (c *CPU) GetRegister(x uint8) uint8          { return c.v[x&0x0F] }
func (c *CPU) GetRegisters() [RegisterCount]uint8 { return c.v }
func (c *CPU) GetDelayTimer() uint8               { return c.delayTimer }
func (c *CPU) GetSoundTimer() uint8               { return c.soundTimer }
func (c *CPU) GetLastInstruction() Instruction    { return c.last }
func (c *CPU) GetCycles() uint64                  { return c.cycles }

// GetStack returns the return addresses currently on the stack, oldest first.
func (c *CPU) GetStack() []uint16 {
	out := make([]uint16, c.sp)
	copy(out, c.stack[:c.sp])
	return out
}

func (c *CPU) SetPC(pc uint16)            { c.pc = pc }
func (c *CPU) SetIndex(index uint16)      { c.index = index }
func (c *CPU) SetRegister(x, value uint8) { c.v[x&0x0F] = value }
func (c *CPU) SetDelayTimer(value uint8)  { c.delayTimer = value }
func (c *CPU) SetSoundTimer(value uint8)  { c.soundTimer = value }

// GetFlag returns VF as a bool, the way most instructions report their flag.
func (c *CPU) GetFlag() bool {
	return bit.IsSet(0, c.v[flagRegister])
}
