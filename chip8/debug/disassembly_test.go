package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDisassembly(t *testing.T) {
	snapshot := &MemorySnapshot{StartAddr: 0x200, Bytes: make([]byte, 40)}
	snapshot.Bytes[10], snapshot.Bytes[11] = 0x00, 0xE0

	tests := []struct {
		name      string
		pc        uint16
		maxLines  int
		wantFirst uint16
		wantLen   int
	}{
		{"centred", 0x20A, 5, 0x206, 5},
		{"clamped at start", 0x200, 5, 0x200, 5},
		{"clamped at end", 0x226, 5, 0x21E, 5},
		{"narrow window", 0x20A, 3, 0x208, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := CreateDisassembly(snapshot, tt.pc, tt.maxLines)
			require.Len(t, lines, tt.wantLen)
			assert.Equal(t, tt.wantFirst, lines[0].Address)

			current := 0
			for _, l := range lines {
				if l.IsCurrent {
					current++
					assert.Equal(t, tt.pc, l.Address)
				}
			}
			assert.Equal(t, 1, current)
		})
	}

	lines := CreateDisassembly(snapshot, 0x20A, 5)
	assert.Equal(t, "CLS", lines[2].Instruction)
}

func TestCreateDisassemblyOutsideSnapshot(t *testing.T) {
	snapshot := &MemorySnapshot{StartAddr: 0x200, Bytes: make([]byte, 20)}

	lines := CreateDisassembly(snapshot, 0x400, 4)
	require.Len(t, lines, 4)
	assert.True(t, lines[3].IsCurrent)
	assert.Equal(t, "[PC outside snapshot range]", lines[3].Instruction)
}

func TestCreateDisassemblyNil(t *testing.T) {
	assert.Nil(t, CreateDisassembly(nil, 0x200, 4))
}
