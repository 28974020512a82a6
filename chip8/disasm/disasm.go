package disasm

import (
	"fmt"
	"io"

	"github.com/valerio/go-chip8/chip8/cpu"
)

// InstructionSize is the width of every instruction in bytes.
const InstructionSize = 2

// Reader provides read access to machine memory. *memory.Memory satisfies it.
type Reader interface {
	Read(addr uint16) (byte, error)
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Raw         uint16
	Instruction cpu.Instruction
}

// Text returns the instruction in assembler syntax.
func (l DisassemblyLine) Text() string {
	return l.Instruction.String()
}

// DisassembleAt disassembles the instruction at the given address. Bytes
// past the end of memory read as zero.
func DisassembleAt(addr uint16, mem Reader) DisassemblyLine {
	high, _ := mem.Read(addr)
	low, _ := mem.Read(addr + 1)
	in := cpu.Decode(high, low)
	return DisassemblyLine{Address: addr, Raw: in.Raw, Instruction: in}
}

// DisassembleRange disassembles count instructions starting from addr.
func DisassembleRange(addr uint16, count int, mem Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for i := 0; i < count; i++ {
		a := int(addr) + i*InstructionSize
		if a > 0xFFFF {
			break
		}
		lines = append(lines, DisassembleAt(uint16(a), mem))
	}
	return lines
}

// DisassembleAround disassembles up to before instructions ahead of pc,
// the instruction at pc and after instructions following it.
func DisassembleAround(pc uint16, before, after int, mem Reader) []DisassemblyLine {
	start := int(pc) - before*InstructionSize
	if start < 0 {
		start = int(pc) % InstructionSize
	}
	count := (int(pc)-start)/InstructionSize + 1 + after
	return DisassembleRange(uint16(start), count, mem)
}

// DisassembleBytes disassembles a program image loaded at base. A trailing
// odd byte is emitted as a data word with a zero low byte.
func DisassembleBytes(program []byte, base uint16) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, (len(program)+1)/InstructionSize)
	for i := 0; i < len(program); i += InstructionSize {
		high := program[i]
		var low byte
		if i+1 < len(program) {
			low = program[i+1]
		}
		in := cpu.Decode(high, low)
		lines = append(lines, DisassemblyLine{
			Address:     base + uint16(i),
			Raw:         in.Raw,
			Instruction: in,
		})
	}
	return lines
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = "→"
	}
	return fmt.Sprintf("%s0x%03X: %04X  %s", prefix, line.Address, line.Raw, line.Text())
}

// FormatListingLine formats a line as ADDR  BYTES  MNEMONIC, without the
// cursor column used by the debug panels.
func FormatListingLine(line DisassemblyLine) string {
	return fmt.Sprintf("0x%03X  %04X  %s", line.Address, line.Raw, line.Text())
}

// Write prints a listing of program, one instruction per line.
func Write(w io.Writer, program []byte, base uint16) error {
	for _, line := range DisassembleBytes(program, base) {
		if _, err := fmt.Fprintln(w, FormatListingLine(line)); err != nil {
			return err
		}
	}
	return nil
}
