//go:build ebiten

package ebiten

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend renders through an Ebiten window. Ebiten drives its own game
// loop in a goroutine; Update hands frames to it and collects the input
// it saw, both under mu.
type Backend struct {
	config backend.BackendConfig
	scale  int

	mu        sync.Mutex
	pixels    []byte
	events    []backend.InputEvent
	status    string
	closed    bool
	showDebug bool

	screen    *ebiten.Image
	statusBar *ebiten.Image
	ready     chan struct{}
	done      chan struct{}
	started   bool

	frame *video.FrameBuffer

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New creates a new Ebiten backend
func New() *Backend {
	return &Backend{
		ready: make(chan struct{}),
		done:  make(chan struct{}),
		frame: video.NewFrameBuffer(),
	}
}

// Init opens the window and waits for the first frame to be drawn.
func (e *Backend) Init(config backend.BackendConfig) error {
	e.config = config
	e.showDebug = config.ShowDebug
	e.scale = config.Scale
	if e.scale <= 0 {
		e.scale = display.DefaultPixelScale
	}
	e.pixels = display.ToRGBA(e.frame, nil)

	ebiten.SetWindowSize(video.FramebufferWidth*e.scale, video.FramebufferHeight*e.scale)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(60)

	e.started = true
	go func() {
		defer close(e.done)
		if err := ebiten.RunGame(&game{e}); err != nil {
			slog.Error("Ebiten game loop failed", "error", err)
		}
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()
	}()

	select {
	case <-e.ready:
	case <-e.done:
		return fmt.Errorf("ebiten window closed during startup")
	}

	slog.Info("Ebiten backend initialized", "scale", e.scale, "test_pattern", config.TestPattern)
	return nil
}

// Update publishes a frame to the window and returns the input collected since the last call.
func (e *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	e.frame.CopyFrom(frame)

	var status string
	if e.showDebug && e.config.DebugProvider != nil {
		status = statusLine(e.config.DebugProvider.ExtractDebugData())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pixels = display.ToRGBA(e.frame, e.pixels)
	e.status = status

	events := e.events
	e.events = nil
	if e.closed {
		events = append(events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	}
	return events, nil
}

// Cleanup asks the game loop to stop and waits for it.
func (e *Backend) Cleanup() error {
	if !e.started {
		return nil
	}
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	<-e.done
	return nil
}

// HandleAction processes backend-specific actions
func (e *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(e.frame, "chip8_snapshot")
		e.copyToClipboard()
	case action.EmulatorDebugToggle:
		e.showDebug = !e.showDebug
	}
}

// copyToClipboard puts a text rendering of the current frame on the clipboard.
func (e *Backend) copyToClipboard() {
	e.clipboardOnce.Do(func() {
		e.clipboardOK = clipboard.Init() == nil
	})
	if !e.clipboardOK {
		slog.Warn("Clipboard unavailable, text snapshot skipped")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(debug.FrameText(e.frame)))
	slog.Info("Frame copied to clipboard as text")
}

func statusLine(data *debug.Data) string {
	if data == nil {
		return ""
	}
	if data.TestPattern != "" {
		return "Test pattern: " + data.TestPattern
	}
	if data.CPU == nil {
		return ""
	}
	cpu := data.CPU
	line := fmt.Sprintf("%s PC:%03X I:%03X DT:%02X ST:%02X %s", data.DebuggerState, cpu.PC, cpu.I, cpu.DelayTimer, cpu.SoundTimer, cpu.LastInstruction)
	if data.Fault != "" {
		line += "\n" + data.Fault
	}
	return line
}

// game adapts the backend to ebiten.Game.
type game struct {
	b *Backend
}

var (
	statusColor   = color.RGBA{R: 0xFF, G: 0xC0, B: 0x40, A: 0xFF}
	statusBgColor = color.RGBA{A: 0xB0}
)

func (g *game) Update() error {
	b := g.b
	if ebiten.IsWindowBeingClosed() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		return ebiten.Termination
	}

	var events []backend.InputEvent
	for key, act := range keyMapping {
		switch {
		case inpututil.IsKeyJustPressed(key):
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		case inpututil.IsKeyJustReleased(key):
			if action.GetInfo(act).Category == action.CategoryKeypad {
				events = append(events, backend.InputEvent{Action: act, Type: event.Release})
			}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
	if b.closed {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	b := g.b
	if b.screen == nil {
		b.screen = ebiten.NewImage(video.FramebufferWidth, video.FramebufferHeight)
	}

	b.mu.Lock()
	b.screen.WritePixels(b.pixels)
	status := b.status
	b.mu.Unlock()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(b.scale), float64(b.scale))
	screen.DrawImage(b.screen, opts)

	if status != "" {
		if b.statusBar == nil {
			b.statusBar = ebiten.NewImage(video.FramebufferWidth*b.scale, 32)
			b.statusBar.Fill(statusBgColor)
		}
		screen.DrawImage(b.statusBar, nil)
		text.Draw(screen, status, basicfont.Face7x13, 4, 13, statusColor)
	}

	select {
	case <-b.ready:
	default:
		close(b.ready)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return video.FramebufferWidth * g.b.scale, video.FramebufferHeight * g.b.scale
}

// ebitenKeyNames converts Ebiten keys to key names used in default mappings
var ebitenKeyNames = map[ebiten.Key]string{
	ebiten.KeyDigit1: "1", ebiten.KeyDigit2: "2", ebiten.KeyDigit3: "3", ebiten.KeyDigit4: "4",
	ebiten.KeyQ: "q", ebiten.KeyW: "w", ebiten.KeyE: "e", ebiten.KeyR: "r",
	ebiten.KeyA: "a", ebiten.KeyS: "s", ebiten.KeyD: "d", ebiten.KeyF: "f",
	ebiten.KeyZ: "z", ebiten.KeyX: "x", ebiten.KeyC: "c", ebiten.KeyV: "v",

	ebiten.KeySpace:  "Space",
	ebiten.KeyP:      "p",
	ebiten.KeyO:      "o",
	ebiten.KeyN:      "n",
	ebiten.KeyI:      "i",
	ebiten.KeyF5:     "F5",
	ebiten.KeyF9:     "F9",
	ebiten.KeyF10:    "F10",
	ebiten.KeyF12:    "F12",
	ebiten.KeyEscape: "Escape",
	ebiten.KeyEqual:  "=",
	ebiten.KeyMinus:  "-",
}

func buildKeyMapping() map[ebiten.Key]action.Action {
	mapping := make(map[ebiten.Key]action.Action)
	for key, name := range ebitenKeyNames {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

var keyMapping = buildKeyMapping()
