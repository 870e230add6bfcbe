package haptics

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/remoteplay/tui/internal/session"
)

type recorder struct {
	calls []string
	amp   uint8
}

func (r *recorder) Vibrate(d time.Duration, amplitude uint8) {
	r.calls = append(r.calls, "vibrate")
	r.amp = amplitude
}

func (r *recorder) Cancel() {
	r.calls = append(r.calls, "cancel")
}

func TestAmplitude(t *testing.T) {
	tests := []struct {
		left, right uint8
		want        uint8
	}{
		{200, 100, 150},
		{0, 0, 0},
		{255, 255, 255},
		{1, 0, 0},
		{255, 0, 127},
	}
	for _, tt := range tests {
		got := Amplitude(session.Rumble{Left: tt.left, Right: tt.right})
		if got != tt.want {
			t.Errorf("Amplitude(%d, %d) = %d, want %d", tt.left, tt.right, got, tt.want)
		}
	}
}

func TestHandleVibrates(t *testing.T) {
	r := &recorder{}
	h := NewHandler(r, zerolog.Nop())
	h.Handle(session.Rumble{Left: 200, Right: 100})

	assert.Equal(t, []string{"cancel", "vibrate"}, r.calls)
	assert.Equal(t, uint8(150), r.amp)
}

func TestHandleZeroOnlyCancels(t *testing.T) {
	r := &recorder{}
	h := NewHandler(r, zerolog.Nop())
	h.Handle(session.Rumble{})

	assert.Equal(t, []string{"cancel"}, r.calls)
}

func TestMeterLevel(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMeter()
	m.now = func() time.Time { return now }

	assert.Zero(t, m.Level())

	m.Vibrate(time.Second, 150)
	assert.Equal(t, uint8(150), m.Level())

	now = now.Add(999 * time.Millisecond)
	assert.Equal(t, uint8(150), m.Level())

	now = now.Add(time.Millisecond)
	assert.Zero(t, m.Level(), "effect ends after its duration")

	m.Vibrate(time.Second, 80)
	m.Cancel()
	assert.Zero(t, m.Level())
}
