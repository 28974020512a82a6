package video

import (
	"iter"
	"slices"
)

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// Coordinate addresses a single pixel by row (y) and column (x).
type Coordinate struct {
	Row int
	Col int
}

// FrameBuffer is the 64x32 monochrome display, stored row-major.
type FrameBuffer struct {
	pixels [FramebufferSize]bool
}

// NewFrameBuffer returns a cleared frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.pixels = [FramebufferSize]bool{}
}

// GetPixel returns the state of the pixel at (x, y). Coordinates wrap.
func (fb *FrameBuffer) GetPixel(x, y int) bool {
	return fb.pixels[index(x, y)]
}

// SetPixel sets the pixel at (x, y). Coordinates wrap.
func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	fb.pixels[index(x, y)] = on
}

// Toggle flips the pixel at (x, y) and reports whether it was on before,
// which is a collision in sprite drawing terms. Coordinates wrap.
func (fb *FrameBuffer) Toggle(x, y int) (collision bool) {
	i := index(x, y)
	collision = fb.pixels[i]
	fb.pixels[i] = !collision
	return collision
}

// LitPixels yields the coordinates of every lit pixel in row-major order.
// The sequence reads the buffer lazily and can be ranged over any number of times.
func (fb *FrameBuffer) LitPixels() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for i, on := range fb.pixels {
			if !on {
				continue
			}
			if !yield(Coordinate{Row: i / FramebufferWidth, Col: i % FramebufferWidth}) {
				return
			}
		}
	}
}

// PixelCoordinates collects LitPixels into a slice.
func (fb *FrameBuffer) PixelCoordinates() []Coordinate {
	return slices.Collect(fb.LitPixels())
}

// ToSlice exposes the row-major pixel states for renderers.
func (fb *FrameBuffer) ToSlice() []bool {
	return fb.pixels[:]
}

// CopyFrom overwrites the buffer with the contents of other.
func (fb *FrameBuffer) CopyFrom(other *FrameBuffer) {
	fb.pixels = other.pixels
}

func index(x, y int) int {
	x = ((x % FramebufferWidth) + FramebufferWidth) % FramebufferWidth
	y = ((y % FramebufferHeight) + FramebufferHeight) % FramebufferHeight
	return y*FramebufferWidth + x
}
