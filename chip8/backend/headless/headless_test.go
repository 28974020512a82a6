package headless_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		h := headless.New(3, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test"}))

		frame := video.NewFrameBuffer()
		for i := 0; i < 3; i++ {
			events, err := h.Update(frame)
			require.NoError(t, err)

			if i < 2 {
				assert.Empty(t, events)
			} else {
				require.Len(t, events, 1)
				assert.Equal(t, action.EmulatorQuit, events[0].Action)
				assert.Equal(t, event.Press, events[0].Type)
			}
		}
		assert.Equal(t, 3, h.FrameCount())
		assert.NoError(t, h.Cleanup())
	})

	t.Run("test pattern mode", func(t *testing.T) {
		h := headless.New(1, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test", TestPattern: true}))

		events, err := h.Update(video.NewFrameBuffer())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, action.EmulatorQuit, events[0].Action)
	})
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := t.TempDir()
	cfg, err := headless.CreateSnapshotConfig(2, dir, "/roms/maze.ch8", true)
	require.NoError(t, err)
	assert.Equal(t, "maze", cfg.ROMName)
	assert.True(t, cfg.Text)

	h := headless.New(3, cfg)
	require.NoError(t, h.Init(backend.BackendConfig{}))

	frame := video.NewFrameBuffer()
	frame.SetPixel(5, 5, true)
	for range 3 {
		_, err := h.Update(frame)
		require.NoError(t, err)
	}

	pngs, err := filepath.Glob(filepath.Join(dir, "maze_frame_*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 2, "frame 2 by interval, frame 3 as final")

	text, err := os.ReadFile(filepath.Join(dir, "maze_frame_2.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "# ROM: maze, frame: 2")
	assert.Equal(t, 3+video.FramebufferHeight, strings.Count(string(text), "\n"))
}

func TestCreateSnapshotConfigDisabled(t *testing.T) {
	cfg, err := headless.CreateSnapshotConfig(0, "", "rom.ch8", true)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Directory)
}

func TestCreateSnapshotConfigNames(t *testing.T) {
	tests := []struct {
		romPath string
		want    string
	}{
		{"games/PONG.ch8", "PONG"},
		{"tetris", "tetris"},
		{"", "chip8"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg, err := headless.CreateSnapshotConfig(1, t.TempDir(), tt.romPath, false)
			require.NoError(t, err)
			assert.True(t, cfg.Enabled)
			assert.Equal(t, tt.want, cfg.ROMName)
		})
	}
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
