package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/memory"
)

func loaded(t *testing.T, program ...byte) *memory.Memory {
	t.Helper()
	mem := memory.New()
	require.NoError(t, mem.LoadProgram(program))
	return mem
}

func TestDisassembleAt(t *testing.T) {
	mem := loaded(t, 0x00, 0xE0, 0xA2, 0x2A, 0xFF, 0xFF)

	tests := []struct {
		addr uint16
		op   cpu.Op
		text string
	}{
		{0x200, cpu.OpCLS, "CLS"},
		{0x202, cpu.OpLDI, "LD I, 0x22A"},
		{0x204, cpu.OpInvalid, "DW 0xFFFF"},
	}

	for _, tt := range tests {
		line := DisassembleAt(tt.addr, mem)
		assert.Equal(t, tt.addr, line.Address)
		assert.Equal(t, tt.op, line.Instruction.Op)
		assert.Equal(t, tt.text, line.Text())
	}
}

func TestDisassembleAtEndOfMemory(t *testing.T) {
	line := DisassembleAt(memory.Size-1, memory.New())
	assert.Equal(t, uint16(memory.Size-1), line.Address)
	assert.Equal(t, uint16(0x0000), line.Raw)
}

func TestDisassembleAround(t *testing.T) {
	mem := loaded(t, make([]byte, 32)...)

	lines := DisassembleAround(0x208, 2, 3, mem)
	require.Len(t, lines, 6)
	assert.Equal(t, uint16(0x204), lines[0].Address)
	assert.Equal(t, uint16(0x208), lines[2].Address)
	assert.Equal(t, uint16(0x20E), lines[5].Address)

	// clamps at address zero
	lines = DisassembleAround(0x002, 4, 1, mem)
	require.Len(t, lines, 3)
	assert.Equal(t, uint16(0x000), lines[0].Address)
}

func TestDisassembleBytesOddLength(t *testing.T) {
	lines := DisassembleBytes([]byte{0x12, 0x00, 0x60}, memory.ProgramStart)
	require.Len(t, lines, 2)
	assert.Equal(t, "JP 0x200", lines[0].Text())
	assert.Equal(t, uint16(0x6000), lines[1].Raw)
	assert.Equal(t, uint16(0x202), lines[1].Address)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []byte{0x00, 0xE0, 0xD0, 0x15}, memory.ProgramStart))

	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, out, 2)
	assert.Equal(t, "0x200  00E0  CLS", out[0])
	assert.Equal(t, "0x202  D015  DRW V0, V1, 5", out[1])
}

func TestFormatCurrentLine(t *testing.T) {
	line := DisassemblyLine{Address: 0x200, Raw: 0x00EE, Instruction: cpu.Decode(0x00, 0xEE)}
	assert.Equal(t, "→0x200: 00EE  RET", FormatDisassemblyLine(line, true))
	assert.Equal(t, " 0x200: 00EE  RET", FormatDisassemblyLine(line, false))
	assert.Equal(t, "0x200  00EE  RET", FormatListingLine(line))
}
