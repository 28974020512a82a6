//go:build oto

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoBeeper plays the buzzer through the system audio device.
// Note: building this requires the platform audio libraries (ALSA on Linux),
// see build tags (oto).
type OtoBeeper struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewOtoBeeper opens the audio device.
func NewOtoBeeper() (*OtoBeeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	return &OtoBeeper{ctx: ctx}, nil
}

// Beep starts a new tone, cutting off one that is still playing.
func (b *OtoBeeper) Beep() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player != nil {
		b.player.Pause()
		_ = b.player.Close()
	}
	b.player = b.ctx.NewPlayer(NewBeepTone())
	b.player.Play()
}

func (b *OtoBeeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return err
}
