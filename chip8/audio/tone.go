package audio

import (
	"encoding/binary"
	"io"
	"math"
	"time"
)

const (
	SampleRate     = 44100
	BeepFrequency  = 440
	BeepDuration   = 100 * time.Millisecond
	BeepVolume     = 0.25
	bytesPerSample = 4
)

// Tone is a mono square wave encoded as little endian float32 samples.
// It returns io.EOF once its duration has been read, and io.ErrShortBuffer
// for a buffer too small to hold one sample.
type Tone struct {
	frequency  float64
	sampleRate int
	volume     float32
	remaining  int
	position   int
}

// NewTone returns a square wave of the given frequency and length.
func NewTone(frequency float64, duration time.Duration, sampleRate int, volume float32) *Tone {
	return &Tone{
		frequency:  frequency,
		sampleRate: sampleRate,
		volume:     volume,
		remaining:  int(int64(duration) * int64(sampleRate) / int64(time.Second)),
	}
}

// NewBeepTone returns the standard buzzer tone.
func NewBeepTone() *Tone {
	return NewTone(BeepFrequency, BeepDuration, SampleRate, BeepVolume)
}

func (t *Tone) Read(p []byte) (int, error) {
	if t.remaining <= 0 {
		return 0, io.EOF
	}
	if len(p) > 0 && len(p) < bytesPerSample {
		return 0, io.ErrShortBuffer
	}

	n := min(len(p)/bytesPerSample, t.remaining)
	period := float64(t.sampleRate) / t.frequency
	for i := range n {
		phase := math.Mod(float64(t.position), period) / period
		sample := t.volume
		if phase >= 0.5 {
			sample = -t.volume
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(sample))
		t.position++
	}
	t.remaining -= n
	return n * bytesPerSample, nil
}

// Samples returns how many samples are left to read.
func (t *Tone) Samples() int {
	return t.remaining
}
