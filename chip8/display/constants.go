package display

import "github.com/valerio/go-chip8/chip8/video"

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for CHIP-8 pixels
	DefaultPixelScale = 10
	// DefaultWindowWidth is the default window width (64 * scale)
	DefaultWindowWidth = video.FramebufferWidth * DefaultPixelScale // 640
	// DefaultWindowHeight is the default window height (32 * scale)
	DefaultWindowHeight = video.FramebufferHeight * DefaultPixelScale // 320
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Palette used by the graphical backends and snapshots.
var (
	OnColor  = Color{R: 0xE0, G: 0xF0, B: 0xE0}
	OffColor = Color{R: 0x10, G: 0x18, B: 0x10}
)

// PixelColor returns the palette color for a pixel state.
func PixelColor(on bool) Color {
	if on {
		return OnColor
	}
	return OffColor
}

// ToRGBA converts a frame into packed RGBA bytes, row-major.
func ToRGBA(frame *video.FrameBuffer, dst []byte) []byte {
	size := video.FramebufferSize * RGBABytesPerPixel
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for i, on := range frame.ToSlice() {
		c := PixelColor(on)
		idx := i * RGBABytesPerPixel
		dst[idx] = c.R
		dst[idx+1] = c.G
		dst[idx+2] = c.B
		dst[idx+3] = FullAlpha
	}
	return dst
}

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 4
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 4
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 2
	// TestPatternAnimationFrames is the number of frames between test pattern animations
	TestPatternAnimationFrames = 30
	// TestPatternStripeSpeed is the animation speed for stripe patterns
	TestPatternStripeSpeed = 1
	// TestPatternDiagonalSpeed is the animation speed for diagonal patterns
	TestPatternDiagonalSpeed = 2
)

// TestPatternNames are the display names of the test patterns, by index.
var TestPatternNames = [TestPatternCount]string{"Checkerboard", "Border", "Stripes", "Diagonal"}
