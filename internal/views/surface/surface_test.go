package surface

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/session"
)

func newSurface(target string, policy geometry.Policy) Model {
	m := New(target, 2)
	m.Policy = policy
	m.Profile = session.VideoProfile{Width: 1920, Height: 1080}
	m.SetSize(80, 24)
	return m
}

func TestFrameCells(t *testing.T) {
	tests := []struct {
		policy     geometry.Policy
		x, y, w, h int
	}{
		{geometry.Fit, 0, 1, 80, 22},
		{geometry.Stretch, 0, 0, 80, 24},
		{geometry.Zoom, 0, 0, 80, 24},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			x, y, w, h := newSurface(config.RenderContainer, tt.policy).Frame().Cells(2)
			assert.Equal(t, []int{tt.x, tt.y, tt.w, tt.h}, []int{x, y, w, h})
		})
	}
}

func TestRenderTargetsAgree(t *testing.T) {
	for _, p := range geometry.Policies() {
		container := newSurface(config.RenderContainer, p).Frame()
		transform := newSurface(config.RenderTransform, p).Frame()
		assert.InDelta(t, container.X, transform.X, 1e-9, p.String())
		assert.InDelta(t, container.Y, transform.Y, 1e-9, p.String())
		assert.InDelta(t, container.Width, transform.Width, 1e-9, p.String())
		assert.InDelta(t, container.Height, transform.Height, 1e-9, p.String())
	}
}

func TestDegenerateInputs(t *testing.T) {
	m := newSurface(config.RenderContainer, geometry.Fit)
	m.Profile = session.VideoProfile{}
	assert.True(t, m.Frame().Empty())
	assert.Contains(t, m.View(), "no video")

	m = newSurface(config.RenderContainer, geometry.Fit)
	m.SetSize(0, 0)
	assert.True(t, m.Frame().Empty())
	assert.Empty(t, m.View())
}

func TestViewSize(t *testing.T) {
	m := newSurface(config.RenderContainer, geometry.Fit)
	v := m.View()
	assert.Equal(t, 24, lipgloss.Height(v))
	assert.Equal(t, 80, lipgloss.Width(v))
	assert.Contains(t, v, "1920x1080 fit")
}

func TestProgressSpinner(t *testing.T) {
	m := newSurface(config.RenderContainer, geometry.Fit)
	assert.Nil(t, m.Update(spinner.TickMsg{}), "ticks are dropped while hidden")

	cmd := m.SetProgress(true)
	assert.NotNil(t, cmd)
	assert.Nil(t, m.SetProgress(true), "already shown")
	assert.True(t, strings.Contains(m.View(), "1920x1080"))

	m.SetProgress(false)
	assert.False(t, m.Progress())
	assert.Nil(t, m.Update(spinner.TickMsg{}))
}
