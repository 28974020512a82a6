package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/ebiten"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/timing"
	"golang.org/x/term"
)

var runFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "rom",
		Usage: "Path to the ROM file",
	},
	cli.StringFlag{
		Name:  "backend",
		Usage: "Backend to use: terminal, headless, sdl2 or ebiten",
		Value: "terminal",
	},
	cli.IntFlag{
		Name:  "frames",
		Usage: "Number of frames to run with the headless backend (required for headless)",
		Value: 0,
	},
	cli.IntFlag{
		Name:  "ipf",
		Usage: "Instructions executed per frame",
		Value: chip8.DefaultInstructionsPerFrame,
	},
	cli.StringFlag{
		Name:  "fault",
		Usage: "What to do when an instruction faults: halt or skip",
		Value: "halt",
	},
	cli.Uint64Flag{
		Name:  "seed",
		Usage: "Seed for the RND instruction (0 = random)",
	},
	cli.StringFlag{
		Name:  "audio",
		Usage: "Audio output: log, oto or none",
		Value: "log",
	},
	cli.StringFlag{
		Name:  "pacing",
		Usage: "Frame pacing for interactive backends: adaptive, ticker or none",
		Value: timing.PacingAdaptive,
	},
	cli.IntFlag{
		Name:  "scale",
		Usage: "Window scale for the graphical backends",
		Value: display.DefaultPixelScale,
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "Show debug panels and enable debug logging",
	},
	cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
		Value: "info",
	},
	cli.BoolFlag{
		Name:  "test-pattern",
		Usage: "Display a test pattern instead of emulation (for debugging display)",
	},
	cli.IntFlag{
		Name:  "snapshot-interval",
		Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		Value: 0,
	},
	cli.StringFlag{
		Name:  "snapshot-dir",
		Usage: "Directory to save frame snapshots (default: temp directory)",
	},
	cli.BoolFlag{
		Name:  "snapshot-text",
		Usage: "Also save a text rendering of each snapshot",
	},
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = runFlags
	app.Action = runEmulator
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run a ROM (default)",
			ArgsUsage: "<ROM file>",
			Flags:     runFlags,
			Action:    runEmulator,
		},
		{
			Name:      "disasm",
			Usage:     "Print the disassembly of a ROM",
			ArgsUsage: "<ROM file>",
			Action:    disassemble,
		},
		{
			Name:      "asm",
			Usage:     "Assemble a source file into a ROM image",
			ArgsUsage: "<source file>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Usage: "Output ROM path (default: source name with .ch8 extension)",
				},
			},
			Action: assemble,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func setupLogging(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
	}
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func romPathArg(c *cli.Context) (string, error) {
	if romPath := c.String("rom"); romPath != "" {
		return romPath, nil
	}
	if c.NArg() > 0 {
		return c.Args().Get(0), nil
	}
	cli.ShowAppHelp(c)
	return "", errors.New("no ROM path provided")
}

func runEmulator(c *cli.Context) error {
	if err := setupLogging(c); err != nil {
		return err
	}

	testPattern := c.Bool("test-pattern")
	backendName := strings.ToLower(c.String("backend"))
	frames := c.Int("frames")

	romPath := ""
	if !testPattern {
		var err error
		if romPath, err = romPathArg(c); err != nil {
			return err
		}
	}

	if backendName == "headless" && frames <= 0 && !testPattern {
		return errors.New("headless backend requires --frames option with a positive value")
	}
	if backendName == "terminal" && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal, use --backend headless")
	}

	b, err := createBackend(c, backendName, romPath)
	if err != nil {
		return err
	}

	beeper, err := createBeeper(c.String("audio"))
	if err != nil {
		return err
	}
	defer beeper.Close()

	var limiter timing.Limiter
	if backendName != "headless" {
		if limiter, err = timing.New(c.String("pacing")); err != nil {
			return err
		}
		defer timing.Stop(limiter)
	}

	var emu chip8.Emulator
	if testPattern {
		slog.Info("Running in test pattern mode")
		tp := chip8.NewTestPatternEmulator()
		tp.SetFrameLimiter(limiter)
		emu = tp
	} else {
		policy, err := chip8.ParseFaultPolicy(c.String("fault"))
		if err != nil {
			return err
		}
		vm, err := chip8.NewWithFile(romPath, chip8.Config{
			InstructionsPerFrame: c.Int("ipf"),
			FaultPolicy:          policy,
			Seed:                 c.Uint64("seed"),
			Beeper:               beeper,
			Limiter:              limiter,
		})
		if err != nil {
			return err
		}
		emu = vm
	}

	var opts []chip8.LoopOption
	if backendName == "headless" {
		opts = append(opts, chip8.WithStopOnHalt())
	}
	loop := chip8.NewLoop(emu, b, opts...)

	title := "CHIP-8"
	if romPath != "" {
		title += " - " + filepath.Base(romPath)
	}
	config := backend.BackendConfig{
		Title:       title,
		Scale:       c.Int("scale"),
		ShowDebug:   c.Bool("debug"),
		TestPattern: testPattern,
		Callbacks: backend.BackendCallbacks{
			OnQuit: loop.Stop,
			OnDebugMessage: func(message string) {
				slog.Debug(message)
			},
		},
		DebugProvider: emu,
	}

	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", backendName, err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	return loop.Run()
}

func createBackend(c *cli.Context, name, romPath string) (backend.Backend, error) {
	switch name {
	case "terminal":
		return terminal.New(), nil
	case "headless":
		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath, c.Bool("snapshot-text"))
		if err != nil {
			return nil, err
		}
		return headless.New(c.Int("frames"), snapshotConfig), nil
	case "sdl2":
		return sdl2.New(), nil
	case "ebiten":
		return ebiten.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want terminal, headless, sdl2 or ebiten)", name)
	}
}

func createBeeper(name string) (audio.Beeper, error) {
	switch strings.ToLower(name) {
	case "log":
		return audio.NewLogBeeper(audio.WithLevel(slog.LevelInfo)), nil
	case "oto":
		beeper, err := audio.NewOtoBeeper()
		if err != nil {
			return nil, err
		}
		return beeper, nil
	case "none", "":
		return audio.NewNopBeeper(), nil
	default:
		return nil, fmt.Errorf("unknown audio output %q (want log, oto or none)", name)
	}
}
