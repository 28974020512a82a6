package display

import "github.com/valerio/go-chip8/chip8/video"

// DrawTestPattern fills fb with the given pattern. tick advances the
// animated patterns (stripes and diagonal), static ones ignore it.
func DrawTestPattern(fb *video.FrameBuffer, pattern, tick int) {
	step := tick / TestPatternAnimationFrames

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			var on bool
			switch pattern % TestPatternCount {
			case 0: // Checkerboard
				on = ((x/TestPatternTileSize)+(y/TestPatternTileSize))%2 == 0
			case 1: // Border
				on = x == 0 || y == 0 || x == video.FramebufferWidth-1 || y == video.FramebufferHeight-1
			case 2: // Vertical stripes
				on = ((x+step*TestPatternStripeSpeed)/TestPatternStripeWidth)%2 == 0
			case 3: // Diagonal lines
				on = ((x+y+step*TestPatternDiagonalSpeed)/TestPatternTileSize)%2 == 0
			}
			fb.SetPixel(x, y, on)
		}
	}
}

// TestPattern animates the built-in patterns into its own frame buffer.
type TestPattern struct {
	frame *video.FrameBuffer
	index int
	ticks int
}

// NewTestPattern returns the first pattern, already drawn.
func NewTestPattern() *TestPattern {
	p := &TestPattern{frame: video.NewFrameBuffer()}
	p.redraw()
	return p
}

// Advance moves the animation one frame forward.
func (p *TestPattern) Advance() {
	p.ticks++
	if p.ticks%TestPatternAnimationFrames == 0 {
		p.redraw()
	}
}

// Cycle switches to the next pattern.
func (p *TestPattern) Cycle() {
	p.index = (p.index + 1) % TestPatternCount
	p.redraw()
}

func (p *TestPattern) redraw() {
	DrawTestPattern(p.frame, p.index, p.ticks)
}

func (p *TestPattern) Frame() *video.FrameBuffer { return p.frame }
func (p *TestPattern) Index() int                { return p.index }
func (p *TestPattern) Name() string              { return TestPatternNames[p.index] }
func (p *TestPattern) Ticks() int                { return p.ticks }
