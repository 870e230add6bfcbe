// Package overlay implements the visibility logic of the stream screen's
// control overlay: a delayed hide that is re-armed on every interaction, and
// a fade in and out.
//
// Both the hide timer and the fade are tea.Tick loops. Each tick carries the
// generation it was scheduled under; ticks from an older generation are
// dropped, so at most one hide is ever pending and only one fade runs.
package overlay

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

// DefaultHideDelay is how long the overlay stays after the last interaction.
const DefaultHideDelay = 2 * time.Second

const (
	fps           = 60
	frequency     = 8.0
	damping       = 1.0
	settleEpsilon = 0.01
)

// HideMsg fires when a scheduled hide is due.
type HideMsg struct{ gen uint64 }

// FrameMsg advances the fade animation.
type FrameMsg struct{ gen uint64 }

// ExpiredMsg tells the screen the overlay timed out. The screen re-enters
// immersive mode, which hides the overlay.
type ExpiredMsg struct{}

// Model is the overlay visibility state.
type Model struct {
	HideDelay time.Duration
	// Disabled overlays never show (TV mode).
	Disabled bool

	visible bool
	alpha   float64
	vel     float64
	target  float64

	spring  harmonica.Spring
	hideGen uint64
	pending bool
	fadeGen uint64
	fading  bool
}

// New returns a hidden overlay.
func New(hideDelay time.Duration) Model {
	if hideDelay <= 0 {
		hideDelay = DefaultHideDelay
	}
	return Model{
		HideDelay: hideDelay,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Visible reports whether the overlay is on screen (including while it
// fades out).
func (m Model) Visible() bool { return m.visible }

// Alpha is the current opacity in [0, 1].
func (m Model) Alpha() float64 { return math.Max(0, math.Min(1, m.alpha)) }

// Pending reports whether a hide is scheduled.
func (m Model) Pending() bool { return m.pending }

// Show makes the overlay visible, fades it in and schedules a hide after
// HideDelay. A previously scheduled hide is cancelled.
func (m *Model) Show() tea.Cmd {
	if m.Disabled {
		return nil
	}
	m.visible = true

	m.hideGen++
	m.pending = true
	gen := m.hideGen
	hide := tea.Tick(m.HideDelay, func(time.Time) tea.Msg { return HideMsg{gen: gen} })

	return tea.Batch(hide, m.fadeTo(1))
}

// Hide fades the overlay out immediately. It is removed once the fade ends.
// Any scheduled hide is cancelled.
func (m *Model) Hide() tea.Cmd {
	m.pending = false
	if !m.visible {
		return nil
	}
	return m.fadeTo(0)
}

func (m *Model) fadeTo(target float64) tea.Cmd {
	m.target = target
	m.fadeGen++
	m.fading = true
	return frame(m.fadeGen)
}

func frame(gen uint64) tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return FrameMsg{gen: gen} })
}

// Update handles the overlay's own messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case HideMsg:
		if msg.gen != m.hideGen || !m.pending {
			return nil
		}
		m.pending = false
		return func() tea.Msg { return ExpiredMsg{} }

	case FrameMsg:
		if msg.gen != m.fadeGen || !m.fading {
			return nil
		}
		m.alpha, m.vel = m.spring.Update(m.alpha, m.vel, m.target)
		if math.Abs(m.alpha-m.target) < settleEpsilon && math.Abs(m.vel) < settleEpsilon {
			m.alpha, m.vel = m.target, 0
			m.fading = false
			if m.target == 0 {
				m.visible = false
			}
			return nil
		}
		return frame(m.fadeGen)
	}
	return nil
}
