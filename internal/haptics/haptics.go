// Package haptics turns host rumble requests into vibration effects.
package haptics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/remoteplay/tui/internal/session"
)

// EffectDuration is the length of every one-shot effect.
const EffectDuration = time.Second

// Vibrator plays vibration effects.
type Vibrator interface {
	Vibrate(d time.Duration, amplitude uint8)
	Cancel()
}

// Amplitude combines both motors into one amplitude: their mean, capped at
// 255.
func Amplitude(r session.Rumble) uint8 {
	return uint8(min(255, (int(r.Left)+int(r.Right))/2))
}

// Handler plays rumble requests on a Vibrator.
type Handler struct {
	vibrator Vibrator
	log      zerolog.Logger
}

// NewHandler returns a handler driving v.
func NewHandler(v Vibrator, logger zerolog.Logger) *Handler {
	return &Handler{vibrator: v, log: logger}
}

// Handle cancels whatever is playing and starts a one-shot effect for r. A
// zero amplitude only cancels.
func (h *Handler) Handle(r session.Rumble) {
	h.vibrator.Cancel()
	amp := Amplitude(r)
	if amp == 0 {
		return
	}
	h.log.Debug().Uint8("left", r.Left).Uint8("right", r.Right).Uint8("amplitude", amp).Msg("rumble")
	h.vibrator.Vibrate(EffectDuration, amp)
}

// Meter is a Vibrator for terminals: it records the current effect so the
// status bar can draw it.
type Meter struct {
	mu        sync.Mutex
	amplitude uint8
	until     time.Time
	now       func() time.Time
}

// NewMeter returns an idle meter.
func NewMeter() *Meter {
	return &Meter{now: time.Now}
}

// Vibrate implements Vibrator.
func (m *Meter) Vibrate(d time.Duration, amplitude uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amplitude = amplitude
	m.until = m.now().Add(d)
}

// Cancel implements Vibrator.
func (m *Meter) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amplitude = 0
	m.until = time.Time{}
}

// Level returns the amplitude of the running effect, or 0.
func (m *Meter) Level() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.amplitude == 0 || !m.now().Before(m.until) {
		return 0
	}
	return m.amplitude
}
