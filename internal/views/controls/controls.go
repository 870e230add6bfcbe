// Package controls renders the stream overlay: the on-screen controls and
// touchpad-only switches and the display mode toggle.
package controls

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/theme"
)

// Model holds the overlay switches. OnScreen and TouchpadOnly are never both
// on. In TV mode both stay off.
type Model struct {
	OnScreen     bool
	TouchpadOnly bool
	Policy       geometry.Policy
	TVMode       bool
}

// New creates the overlay switches.
func New(policy geometry.Policy, tvMode bool) Model {
	return Model{Policy: policy, TVMode: tvMode}
}

// ToggleOnScreen flips the on-screen controls switch and reports whether
// anything changed.
func (m *Model) ToggleOnScreen() bool {
	if m.TVMode {
		return false
	}
	m.OnScreen = !m.OnScreen
	if m.OnScreen {
		m.TouchpadOnly = false
	}
	return true
}

// ToggleTouchpad flips the touchpad-only switch and reports whether anything
// changed.
func (m *Model) ToggleTouchpad() bool {
	if m.TVMode {
		return false
	}
	m.TouchpadOnly = !m.TouchpadOnly
	if m.TouchpadOnly {
		m.OnScreen = false
	}
	return true
}

// View renders the overlay at the given opacity.
func (m Model) View(alpha float64, width int) string {
	fg := theme.FadeColor(alpha)
	text := lipgloss.NewStyle().Foreground(fg)
	selected := text.Bold(true).Underline(true)

	var modes []string
	for _, p := range geometry.Policies() {
		if p == m.Policy {
			modes = append(modes, selected.Render(p.String()))
		} else {
			modes = append(modes, text.Render(p.String()))
		}
	}

	lines := []string{
		text.Render("display  ") + strings.Join(modes, text.Render(" · ")) + text.Render("  (1/2/3)"),
	}
	if !m.TVMode {
		lines = append(lines,
			text.Render(checkbox(m.OnScreen)+" on-screen controls (c)"),
			text.Render(checkbox(m.TouchpadOnly)+" touchpad only (t)"),
		)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Render(strings.Join(lines, "\n"))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
