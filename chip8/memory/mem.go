package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the addressable memory in bytes.
	Size = 4096
	// FontStart is where the hexadecimal glyphs are stored.
	FontStart = 0x000
	// GlyphSize is the number of bytes (rows) in each font glyph.
	GlyphSize = 5
	// ProgramStart is the load address of program images and the initial program counter.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program image that fits above ProgramStart.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrOutOfRange is returned when an access would touch bytes past the end of memory.
	ErrOutOfRange = errors.New("memory access out of range")
	// ErrProgramTooLarge is returned when a program image does not fit in memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// Font holds the 16 hexadecimal glyphs (0-F), 4x5 pixels each, MSB first.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB address space of the machine.
// The font lives at FontStart, programs are loaded at ProgramStart.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed memory with the font table loaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset clears all memory and reloads the font.
func (m *Memory) Reset() {
	clear(m.data[:])
	copy(m.data[FontStart:], Font[:])
}

// LoadProgram copies a program image to ProgramStart.
// Everything from ProgramStart to the end of memory is cleared first, so
// only the bytes of the program are defined after a load.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	clear(m.data[ProgramStart:])
	copy(m.data[ProgramStart:], program)
	return nil
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (byte, error) {
	if int(addr) >= Size {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrOutOfRange, addr)
	}
	return m.data[addr], nil
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value byte) error {
	if int(addr) >= Size {
		return fmt.Errorf("%w: write at 0x%04X", ErrOutOfRange, addr)
	}
	m.data[addr] = value
	return nil
}

// Slice returns a view of n bytes starting at addr. Writes through the
// returned slice modify memory. The whole range is checked up front so that
// callers never observe a partial access.
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	if n < 0 || int(addr)+n > Size {
		return nil, fmt.Errorf("%w: %d bytes at 0x%04X", ErrOutOfRange, n, addr)
	}
	return m.data[int(addr) : int(addr)+n], nil
}

// Snapshot copies up to n bytes starting at addr, truncated at the end of memory.
func (m *Memory) Snapshot(addr uint16, n int) []byte {
	if int(addr) >= Size || n <= 0 {
		return nil
	}
	end := min(int(addr)+n, Size)
	out := make([]byte, end-int(addr))
	copy(out, m.data[addr:end])
	return out
}

// GlyphAddress returns the address of the font glyph for the low nibble of digit.
func GlyphAddress(digit uint8) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}
