package debug

import (
	"github.com/valerio/go-chip8/chip8/disasm"
)

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// CreateDisassembly returns up to maxLines lines of the snapshot, centred
// on pc when pc lies inside it.
func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	// keep instruction alignment relative to pc
	start := snapshot.StartAddr
	bytes := snapshot.Bytes
	if start%disasm.InstructionSize != pc%disasm.InstructionSize && len(bytes) > 0 {
		start++
		bytes = bytes[1:]
	}

	all := disasm.DisassembleBytes(bytes, start)
	lines := make([]DisasmLine, 0, len(all))
	pcIndex := -1
	for i, l := range all {
		if l.Address == pc {
			pcIndex = i
		}
		lines = append(lines, DisasmLine{
			Address:     l.Address,
			Instruction: l.Text(),
			IsCurrent:   l.Address == pc,
		})
	}

	if pcIndex < 0 {
		if len(lines) >= maxLines {
			lines = lines[:maxLines-1]
		}
		return append(lines, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
	}

	startIdx := max(pcIndex-maxLines/2, 0)
	endIdx := min(startIdx+maxLines, len(lines))
	startIdx = max(endIdx-maxLines, 0)
	return lines[startIdx:endIdx]
}
