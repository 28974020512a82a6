package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestToRGBA(t *testing.T) {
	fb := video.NewFrameBuffer()
	fb.SetPixel(1, 0, true)

	pixels := ToRGBA(fb, nil)
	assert.Len(t, pixels, video.FramebufferSize*RGBABytesPerPixel)
	assert.Equal(t, []byte{OffColor.R, OffColor.G, OffColor.B, FullAlpha}, pixels[0:4])
	assert.Equal(t, []byte{OnColor.R, OnColor.G, OnColor.B, FullAlpha}, pixels[4:8])

	// buffer is reused when large enough
	again := ToRGBA(fb, pixels)
	assert.Equal(t, &pixels[0], &again[0])
}

func TestWindowSize(t *testing.T) {
	assert.Equal(t, 640, DefaultWindowWidth)
	assert.Equal(t, 320, DefaultWindowHeight)
}

func TestDrawTestPattern(t *testing.T) {
	fb := video.NewFrameBuffer()

	DrawTestPattern(fb, 0, 0)
	assert.True(t, fb.GetPixel(0, 0))
	assert.False(t, fb.GetPixel(TestPatternTileSize, 0))
	assert.True(t, fb.GetPixel(TestPatternTileSize, TestPatternTileSize))

	DrawTestPattern(fb, 1, 0)
	assert.True(t, fb.GetPixel(0, 10))
	assert.True(t, fb.GetPixel(63, 31))
	assert.False(t, fb.GetPixel(10, 10))
	assert.Len(t, fb.PixelCoordinates(), 2*64+2*30)

	// stripes move with the tick
	DrawTestPattern(fb, 2, 0)
	assert.True(t, fb.GetPixel(1, 0))
	assert.False(t, fb.GetPixel(2, 0))
	DrawTestPattern(fb, 2, TestPatternAnimationFrames)
	assert.False(t, fb.GetPixel(1, 0))
}

func TestTestPattern(t *testing.T) {
	p := NewTestPattern()
	frame := p.Frame()
	assert.Equal(t, "Checkerboard", p.Name())
	assert.True(t, frame.GetPixel(0, 0))

	p.Cycle()
	p.Cycle()
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, "Stripes", p.Name())
	assert.True(t, frame.GetPixel(1, 0))

	for range TestPatternAnimationFrames - 1 {
		p.Advance()
	}
	assert.True(t, frame.GetPixel(1, 0), "redrawn only on the animation boundary")
	p.Advance()
	assert.False(t, frame.GetPixel(1, 0))
	assert.Equal(t, TestPatternAnimationFrames, p.Ticks())
	assert.Same(t, frame, p.Frame())

	p.Cycle()
	p.Cycle()
	assert.Equal(t, 0, p.Index(), "wraps around")
}
