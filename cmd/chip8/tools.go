package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8/asm"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/memory"
)

func disassemble(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "disasm")
		return errors.New("no ROM path provided")
	}

	romPath := c.Args().Get(0)
	program, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("failed to read ROM %s: %w", romPath, err)
	}
	if len(program) > memory.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", memory.ErrProgramTooLarge, len(program), memory.MaxProgramSize)
	}

	return disasm.Write(c.App.Writer, program, memory.ProgramStart)
}

func assemble(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "asm")
		return errors.New("no source path provided")
	}

	srcPath := c.Args().Get(0)
	source, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", srcPath, err)
	}

	program, err := asm.Assemble(filepath.Base(srcPath), string(source))
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".ch8"
	}
	if err := os.WriteFile(out, program, 0o644); err != nil {
		return fmt.Errorf("failed to write ROM %s: %w", out, err)
	}

	slog.Info("Assembled ROM", "source", srcPath, "output", out, "size", len(program))
	return nil
}
