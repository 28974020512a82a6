package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	fb := NewFrameBuffer()

	assert.False(t, fb.Toggle(3, 4), "first toggle turns the pixel on without collision")
	assert.True(t, fb.GetPixel(3, 4))

	assert.True(t, fb.Toggle(3, 4), "second toggle turns it off and collides")
	assert.False(t, fb.GetPixel(3, 4))
}

func TestCoordinatesWrap(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"in range", 10, 10, 10, 10},
		{"right edge", 64, 0, 0, 0},
		{"bottom edge", 0, 32, 0, 0},
		{"far corner", 65, 33, 1, 1},
		{"negative", -1, -1, 63, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer()
			fb.SetPixel(tt.x, tt.y, true)
			assert.True(t, fb.GetPixel(tt.wantX, tt.wantY))
			assert.Equal(t, []Coordinate{{Row: tt.wantY, Col: tt.wantX}}, fb.PixelCoordinates())
		})
	}
}

func TestLitPixels(t *testing.T) {
	fb := NewFrameBuffer()
	assert.Empty(t, fb.PixelCoordinates())

	fb.SetPixel(63, 0, true)
	fb.SetPixel(0, 1, true)
	fb.SetPixel(5, 31, true)

	want := []Coordinate{{Row: 0, Col: 63}, {Row: 1, Col: 0}, {Row: 31, Col: 5}}
	assert.Equal(t, want, fb.PixelCoordinates())

	// restartable
	assert.Equal(t, want, fb.PixelCoordinates())

	// early stop
	var first []Coordinate
	for c := range fb.LitPixels() {
		first = append(first, c)
		break
	}
	assert.Equal(t, want[:1], first)
}

func TestClearAndCopy(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(1, 1, true)

	other := NewFrameBuffer()
	other.CopyFrom(fb)
	assert.True(t, other.GetPixel(1, 1))

	fb.Clear()
	assert.Empty(t, fb.PixelCoordinates())
	assert.True(t, other.GetPixel(1, 1))
	assert.Len(t, fb.ToSlice(), FramebufferSize)
}
