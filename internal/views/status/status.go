// Package status renders the one-line stream status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/session"
	"github.com/remoteplay/tui/internal/theme"
)

const meterWidth = 10

// Model holds the status bar state.
type Model struct {
	State     session.StreamState
	Profile   session.VideoProfile
	Viewport  geometry.Size
	Policy    geometry.Policy
	Rumble    uint8
	Immersive bool
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{State: session.Idle{}}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	label := session.StateName(m.State)
	stateStr := lipgloss.NewStyle().Foreground(theme.StateColor(label)).Render("● " + label)

	parts := []string{
		stateStr,
		fmt.Sprintf("%dx%d", m.Profile.Width, m.Profile.Height),
		fmt.Sprintf("view %.0fx%.0f", m.Viewport.Width, m.Viewport.Height),
		m.Policy.String(),
		renderMeter(m.Rumble),
	}
	if m.Immersive {
		parts = append(parts, theme.StyleDimmed.Render("immersive"))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(strings.Join(parts, sep))
}

func renderMeter(level uint8) string {
	pct := float64(level) / 255
	filled := int(pct*meterWidth + 0.5)
	bar := lipgloss.NewStyle().Foreground(theme.RumbleColor(pct)).Render(strings.Repeat("█", filled))
	empty := theme.StyleDimmed.Render(strings.Repeat("░", meterWidth-filled))
	return "rumble " + bar + empty
}
