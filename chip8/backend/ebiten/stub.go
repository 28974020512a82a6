//go:build !ebiten

package ebiten

import (
	"errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrUnavailable is returned when the binary was built without Ebiten support.
var ErrUnavailable = errors.New("ebiten backend not available, build with -tags ebiten to enable")

// Backend stub for when Ebiten is not compiled in
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (e *Backend) Init(config backend.BackendConfig) error {
	return ErrUnavailable
}

func (e *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrUnavailable
}

func (e *Backend) Cleanup() error {
	return nil
}
