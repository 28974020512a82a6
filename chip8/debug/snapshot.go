package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	litChar   = '█'
	unlitChar = '·'
)

// TakeSnapshot handles the snapshot key for interactive backends, saving a
// PNG in the working directory.
func TakeSnapshot(frame *video.FrameBuffer, baseName string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}
	if baseName == "" {
		baseName = "chip8_snapshot"
	}

	if _, err := SaveFramePNGToDir(frame, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// SaveFramePNGToDir saves a framebuffer as a timestamped PNG in directory,
// or in the working directory when directory is empty. Returns the file path.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	display.ToRGBA(frame, img.Pix)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", baseName, timestamp))

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", video.FramebufferWidth, video.FramebufferHeight), "format", "PNG")
	return filePath, nil
}

// WriteFrameText writes a frame as text, one line per row, with a short header.
func WriteFrameText(w io.Writer, frame *video.FrameBuffer, header string) error {
	var sb strings.Builder
	if header != "" {
		for line := range strings.SplitSeq(header, "\n") {
			fmt.Fprintf(&sb, "# %s\n", line)
		}
	}
	sb.WriteString(FrameText(frame))

	_, err := io.WriteString(w, sb.String())
	return err
}

// FrameText renders a frame as 32 lines of 64 characters.
func FrameText(frame *video.FrameBuffer) string {
	var sb strings.Builder
	sb.Grow((video.FramebufferWidth + 1) * video.FramebufferHeight * 3)

	pixels := frame.ToSlice()
	for y := range video.FramebufferHeight {
		for x := range video.FramebufferWidth {
			if pixels[y*video.FramebufferWidth+x] {
				sb.WriteRune(litChar)
			} else {
				sb.WriteRune(unlitChar)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
