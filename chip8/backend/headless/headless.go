package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend runs without any display. It counts frames, optionally saves
// snapshots, and asks the loop to quit once the frame limit is reached.
type Backend struct {
	config    backend.BackendConfig
	frames    int
	maxFrames int
	snapshots SnapshotConfig
}

// SnapshotConfig controls the frame snapshots written by the headless backend.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // save every Interval frames, and the final one
	Directory string // created if missing
	ROMName   string // file name prefix
	Text      bool   // also write a text rendering next to each PNG
}

// due reports whether frame should be saved.
func (s SnapshotConfig) due(frame int, final bool) bool {
	return s.Enabled && (final || frame%s.Interval == 0)
}

func New(maxFrames int, snapshots SnapshotConfig) *Backend {
	return &Backend{maxFrames: maxFrames, snapshots: snapshots}
}

var quit = []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	if config.TestPattern {
		slog.Info("Headless test pattern mode, exiting after first frame")
		return nil
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshots.Interval,
		"snapshot_dir", h.snapshots.Directory)
	return nil
}

func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	if h.config.TestPattern {
		return quit, nil
	}

	h.frames++
	final := h.maxFrames > 0 && h.frames >= h.maxFrames

	if h.snapshots.due(h.frames, final) {
		h.saveSnapshot(frame)
	}
	if h.frames%timing.TimerFrequency == 0 {
		slog.Debug("Frame progress", "completed", h.frames, "total", h.maxFrames)
	}

	if !final {
		return nil, nil
	}
	if h.snapshots.Enabled {
		slog.Info("Headless execution completed", "frames", h.frames, "snapshots_saved_to", h.snapshots.Directory)
	} else {
		slog.Info("Headless execution completed", "frames", h.frames)
	}
	return quit, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount returns the number of frames processed so far.
func (h *Backend) FrameCount() int {
	return h.frames
}

// CreateSnapshotConfig builds a snapshot configuration from command line
// values. An interval of 0 disables snapshots. An empty directory means a
// fresh temporary one.
func CreateSnapshotConfig(interval int, directory, romPath string, text bool) (SnapshotConfig, error) {
	if interval <= 0 {
		return SnapshotConfig{}, nil
	}

	var err error
	if directory == "" {
		directory, err = os.MkdirTemp("", "chip8-snapshots-*")
	} else {
		err = os.MkdirAll(directory, 0o755)
	}
	if err != nil {
		return SnapshotConfig{}, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
	if name == "" || name == "." {
		name = "chip8"
	}

	return SnapshotConfig{
		Enabled:   true,
		Interval:  interval,
		Directory: directory,
		ROMName:   name,
		Text:      text,
	}, nil
}

// saveSnapshot writes the frame as PNG, and as text when enabled. Failures
// are logged, a missing snapshot never stops the run.
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	base := fmt.Sprintf("%s_frame_%d", h.snapshots.ROMName, h.frames)

	if _, err := debug.SaveFramePNGToDir(frame, base, h.snapshots.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frames, "error", err)
	}
	if !h.snapshots.Text {
		return
	}

	path := filepath.Join(h.snapshots.Directory, base+".txt")
	if err := h.writeText(frame, path); err != nil {
		slog.Error("Failed to save text snapshot", "frame", h.frames, "path", path, "error", err)
	}
}

func (h *Backend) writeText(frame *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	header := fmt.Sprintf("CHIP-8 frame snapshot\nROM: %s, frame: %d\nLegend: █=on ·=off", h.snapshots.ROMName, h.frames)
	return debug.WriteFrameText(file, frame, header)
}
