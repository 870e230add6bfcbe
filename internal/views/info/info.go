// Package info renders the session info flyout. The panel is composed as
// markdown and rendered with glamour.
package info

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/session"
	"github.com/remoteplay/tui/internal/theme"
)

const panelWidth = 64

var stylePanel = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.ColorBorder).
	Padding(0, 1)

// Model holds what the flyout shows.
type Model struct {
	HostURL   string
	SessionID string
	State     session.StreamState
	Profile   session.VideoProfile
	Policy    geometry.Policy
	Target    string
	Frame     geometry.Rect
	TVMode    bool
	Rumble    bool

	// last render, keyed by its markdown source
	source   string
	rendered string
}

// Markdown returns the panel source.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("## Session\n\n")
	b.WriteString("| | |\n|---|---|\n")
	row(&b, "Host", m.HostURL)
	row(&b, "Session", orDash(m.SessionID))
	row(&b, "State", session.StateName(m.State))
	row(&b, "Profile", fmt.Sprintf("%dx%d", m.Profile.Width, m.Profile.Height))
	b.WriteString("\n## Display\n\n")
	b.WriteString("| | |\n|---|---|\n")
	row(&b, "Mode", m.Policy.String())
	row(&b, "Target", m.Target)
	row(&b, "Frame", fmt.Sprintf("%.0fx%.0f at (%.0f, %.0f)", m.Frame.Width, m.Frame.Height, m.Frame.X, m.Frame.Y))
	row(&b, "TV mode", onOff(m.TVMode))
	row(&b, "Rumble", onOff(m.Rumble))
	return b.String()
}

// View renders the panel. Rendering failures fall back to the markdown
// source.
func (m *Model) View() string {
	src := m.Markdown()
	if src != m.source {
		m.source = src
		m.rendered = render(src)
	}
	return stylePanel.Width(panelWidth).Render(m.rendered)
}

func render(src string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(panelWidth-4),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimSpace(out)
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
