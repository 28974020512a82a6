package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
)

func TestTestPatternEmulator(t *testing.T) {
	emu := NewTestPatternEmulator()
	frame := emu.GetCurrentFrame()

	assert.True(t, frame.GetPixel(0, 0), "checkerboard starts lit")
	assert.False(t, frame.GetPixel(display.TestPatternTileSize, 0))

	emu.HandleAction(action.EmulatorTestPatternCycle, false)
	assert.Equal(t, 0, emu.Pattern(), "release ignored")

	emu.HandleAction(action.EmulatorTestPatternCycle, true)
	assert.Equal(t, 1, emu.Pattern())
	assert.True(t, frame.GetPixel(0, 5), "border")
	assert.False(t, frame.GetPixel(5, 5))

	for range display.TestPatternCount - 1 {
		emu.CycleTestPattern()
	}
	assert.Equal(t, 0, emu.Pattern(), "wraps around")

	for range display.TestPatternAnimationFrames {
		require.NoError(t, emu.RunUntilFrame())
	}
	data := emu.ExtractDebugData()
	assert.Nil(t, data.CPU)
	assert.Equal(t, uint64(display.TestPatternAnimationFrames), data.Frames)
	assert.Equal(t, "Checkerboard", data.TestPattern)
}
