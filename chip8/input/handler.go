package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const defaultDebounce = 300 * time.Millisecond

// Handler debounces UI actions so a held key does not toggle pause
// (or take a snapshot) several times in a row.
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
	now            func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  defaultDebounce,
		now:            time.Now,
	}
}

// ProcessEvent returns true if the event should be handled, false if it was debounced.
// Only presses are debounced, releases and holds always pass.
func (h *Handler) ProcessEvent(act action.Action, typ event.Type) bool {
	if typ != event.Press {
		return true
	}

	now := h.now()
	if last, ok := h.lastActionTime[act]; ok && now.Sub(last) < h.debounceDelay {
		return false
	}
	h.lastActionTime[act] = now
	return true
}
