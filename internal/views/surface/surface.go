// Package surface draws the video surface: the frame rectangle the stream
// would occupy inside the terminal, laid out by the configured render target.
package surface

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/session"
	"github.com/remoteplay/tui/internal/theme"
)

var (
	styleFrame = lipgloss.NewStyle().
			Background(theme.ColorSurface).
			Foreground(theme.ColorDimmed).
			Align(lipgloss.Center, lipgloss.Center)

	styleProgress = lipgloss.NewStyle().Foreground(theme.ColorConnecting)
)

// Model holds the surface layout inputs.
type Model struct {
	Target     string // config.RenderContainer or config.RenderTransform
	CellAspect float64
	Policy     geometry.Policy
	Profile    session.VideoProfile
	Cols, Rows int

	progress bool
	spinner  spinner.Model
}

// New creates a surface for the given render target.
func New(target string, cellAspect float64) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = styleProgress
	return Model{
		Target:     target,
		CellAspect: cellAspect,
		spinner:    spin,
	}
}

// SetSize sets the terminal area available to the surface.
func (m *Model) SetSize(cols, rows int) {
	m.Cols = cols
	m.Rows = rows
}

// Viewport is the surface size in square units.
func (m Model) Viewport() geometry.Size {
	return geometry.CellViewport(m.Cols, m.Rows, m.CellAspect)
}

func (m Model) content() geometry.Size {
	return geometry.Size{Width: float64(m.Profile.Width), Height: float64(m.Profile.Height)}
}

// Frame returns the visible part of the video frame in square units. It is
// empty while either the viewport or the profile is degenerate.
func (m Model) Frame() geometry.Rect {
	viewport := m.Viewport()
	content := m.content()
	if !viewport.Valid() || !content.Valid() {
		return geometry.Rect{}
	}

	bounds := geometry.Rect{Width: viewport.Width, Height: viewport.Height}
	if m.Target == config.RenderTransform {
		res := geometry.ComputeResolution(content, viewport, m.Policy)
		return geometry.TransformFor(res, viewport).Bounds(viewport).Intersect(bounds)
	}
	c := geometry.AspectContainer{AspectRatio: content.Width / content.Height, Policy: m.Policy}
	return c.Visible(viewport)
}

// Progress reports whether the progress indicator is shown.
func (m Model) Progress() bool { return m.progress }

// SetProgress shows or hides the progress indicator. Showing it starts the
// spinner.
func (m *Model) SetProgress(on bool) tea.Cmd {
	if on == m.progress {
		return nil
	}
	m.progress = on
	if on {
		return m.spinner.Tick
	}
	return nil
}

// Update advances the spinner. Ticks arriving while hidden stop the loop.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.progress {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// View renders the surface as Cols x Rows cells.
func (m Model) View() string {
	if m.Cols <= 0 || m.Rows <= 0 {
		return ""
	}

	x, y, w, h := m.Frame().Cells(m.CellAspect)
	if w <= 0 || h <= 0 {
		placeholder := theme.StyleDimmed.Render("no video")
		return lipgloss.Place(m.Cols, m.Rows, lipgloss.Center, lipgloss.Center, placeholder)
	}

	label := fmt.Sprintf("%dx%d %s", m.Profile.Width, m.Profile.Height, m.Policy)
	if m.progress {
		label = m.spinner.View() + " " + label
	}
	if lipgloss.Width(label) > w || h < 1 {
		label = ""
	}
	frame := styleFrame.
		Width(w).Height(h).
		MarginLeft(x).MarginTop(y).
		Render(label)

	return lipgloss.Place(m.Cols, m.Rows, lipgloss.Left, lipgloss.Top, frame)
}
