package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/video"
)

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	dividerX := width + 1
	rightPanelX := dividerX + 2
	rightPanelWidth := max(termWidth-rightPanelX, 0)

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawScreen(frame)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil {
		if data := t.debugProvider.ExtractDebugData(); data != nil {
			t.drawRegisters(data, rightPanelX, 1, rightPanelWidth, termHeight)
			t.drawDisassembly(data, rightPanelX, registerHeight+2, rightPanelWidth, termHeight)
			logsY = registerHeight + disasmHeight + 3
		}
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		if dividerX < termWidth {
			t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
		}
	}

	title := " CHIP-8 "
	if t.config.TestPattern && t.debugProvider != nil {
		title = fmt.Sprintf(" Test Pattern: %s ", t.debugProvider.ExtractDebugData().TestPattern)
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	panelX := dividerX + 2
	panelWidth := termWidth - panelX
	if t.config.ShowDebug && t.debugProvider != nil {
		t.drawText(panelX, 0, panelWidth, " Registers ", titleStyle)
		for _, y := range []int{registerHeight + 1, registerHeight + disasmHeight + 2} {
			if y >= termHeight {
				continue
			}
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}
		t.drawText(panelX, registerHeight+1, panelWidth, " Disassembly ", titleStyle)
		t.drawText(panelX, registerHeight+disasmHeight+2, panelWidth, t.logTitle(), titleStyle)
	} else {
		t.drawText(panelX, 0, panelWidth, t.logTitle(), titleStyle)
	}

	helpText := " F10 debug  SPACE pause  N step  O frame  F5 reset  F9 snapshot  ESC quit "
	if t.config.TestPattern {
		helpText = " Test pattern: F12 cycle  F9 snapshot  ESC quit "
	}
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

func (t *Backend) logTitle() string {
	return fmt.Sprintf(" Logs [%s] (-/+ filter) ", render.LevelTag(t.logLevel))
}

// drawScreen packs two pixel rows into each cell with half block glyphs.
func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	style := tcell.StyleDefault.Foreground(t.onColor).Background(t.offColor)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			glyph := render.HalfBlock(frame.GetPixel(x, y), frame.GetPixel(x, y+1))
			t.screen.SetContent(x, y/2+1, glyph, nil, style)
		}
	}
}

func (t *Backend) drawRegisters(data *debug.Data, startX, startY, width, termHeight int) {
	if data.CPU == nil || width <= 0 {
		return
	}
	cpu := data.CPU

	lines := []string{fmt.Sprintf("Status: %s  Frame: %d", data.DebuggerState, data.Frames)}
	for row := 0; row < 4; row++ {
		line := ""
		for col := 0; col < 4; col++ {
			r := row*4 + col
			line += fmt.Sprintf("V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, line)
	}
	lines = append(lines,
		fmt.Sprintf("I:%03X  PC:%03X  SP:%X", cpu.I, cpu.PC, cpu.SP),
		fmt.Sprintf("DT:%02X  ST:%02X  Cycles:%d", cpu.DelayTimer, cpu.SoundTimer, cpu.Cycles),
		fmt.Sprintf("Last: %s", cpu.LastInstruction),
		"Keys: "+keypadString(data.Keys),
	)
	if data.Fault != "" {
		lines = append(lines, "Fault: "+data.Fault)
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	faultStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	for i, line := range lines {
		y := startY + i
		if y >= termHeight || i >= registerHeight {
			break
		}
		s := style
		if data.Fault != "" && i == len(lines)-1 {
			s = faultStyle
		}
		t.drawText(startX, y, width, line, s)
	}
}

func keypadString(keys [16]bool) string {
	out := make([]byte, 0, len(keys))
	for k, down := range keys {
		if down {
			out = append(out, "0123456789ABCDEF"[k])
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}

func (t *Backend) drawDisassembly(data *debug.Data, startX, startY, width, termHeight int) {
	if data.CPU == nil || data.Memory == nil || width <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for i, line := range debug.CreateDisassembly(data.Memory, data.CPU.PC, disasmHeight) {
		y := startY + i
		if y >= termHeight {
			break
		}
		prefix, s := " ", style
		if line.IsCurrent {
			prefix, s = "→", currentStyle
		}
		t.drawText(startX, y, width, fmt.Sprintf("%s0x%03X: %s", prefix, line.Address, line.Instruction), s)
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	if width <= 0 || startY >= termHeight {
		return
	}

	availableHeight := termHeight - startY - 1
	if availableHeight <= 0 {
		return
	}

	logs := t.logBuffer.Recent(t.logLevel, availableHeight)

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range logs {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		text := entry.String()
		if runes := []rune(text); len(runes) > width && width > 3 {
			text = string(runes[:width-3]) + "..."
		}
		t.drawText(startX, startY+i, width, text, style)
	}
}
