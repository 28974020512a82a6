//go:build !oto

package audio

import "errors"

// OtoBeeper stub for builds without audio device support
type OtoBeeper struct{}

// NewOtoBeeper returns an error, build with -tags oto to enable
func NewOtoBeeper() (*OtoBeeper, error) {
	return nil, errors.New("oto audio not available - build with -tags oto to enable")
}

func (b *OtoBeeper) Beep()        {}
func (b *OtoBeeper) Close() error { return nil }
