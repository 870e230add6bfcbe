package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settle runs the fade to completion.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if m.Update(FrameMsg{gen: m.fadeGen}) == nil {
			return
		}
	}
	t.Fatal("fade never settled")
}

func TestShowSchedulesHide(t *testing.T) {
	m := New(2 * time.Second)
	require.NotNil(t, m.Show())

	assert.True(t, m.Visible())
	assert.True(t, m.Pending())

	cmd := m.Update(HideMsg{gen: m.hideGen})
	require.NotNil(t, cmd)
	assert.Equal(t, ExpiredMsg{}, cmd())
	assert.False(t, m.Pending())
}

func TestShowReschedulesHide(t *testing.T) {
	m := New(time.Second)
	m.Show()
	stale := m.hideGen
	m.Show()

	assert.Nil(t, m.Update(HideMsg{gen: stale}), "the first hide was cancelled")
	assert.True(t, m.Pending(), "exactly one hide is pending")
	assert.NotNil(t, m.Update(HideMsg{gen: m.hideGen}))
}

func TestHideFiresOnce(t *testing.T) {
	m := New(time.Second)
	m.Show()
	gen := m.hideGen

	assert.NotNil(t, m.Update(HideMsg{gen: gen}))
	assert.Nil(t, m.Update(HideMsg{gen: gen}))
}

func TestHideCancelsPendingTimer(t *testing.T) {
	m := New(time.Second)
	m.Show()
	gen := m.hideGen
	m.Hide()

	assert.False(t, m.Pending())
	assert.Nil(t, m.Update(HideMsg{gen: gen}))
}

func TestFadeInAndOut(t *testing.T) {
	m := New(time.Second)
	m.Show()
	settle(t, &m)
	assert.Equal(t, 1.0, m.Alpha())
	assert.True(t, m.Visible())

	require.NotNil(t, m.Hide())
	assert.True(t, m.Visible(), "still visible while fading out")
	settle(t, &m)
	assert.Equal(t, 0.0, m.Alpha())
	assert.False(t, m.Visible(), "gone once the fade ends")
}

func TestShowDuringFadeOutReverses(t *testing.T) {
	m := New(time.Second)
	m.Show()
	settle(t, &m)

	m.Hide()
	stale := m.fadeGen
	m.Update(FrameMsg{gen: stale})
	m.Show()

	assert.Nil(t, m.Update(FrameMsg{gen: stale}), "old fade is dropped")
	settle(t, &m)
	assert.True(t, m.Visible())
	assert.Equal(t, 1.0, m.Alpha())
}

func TestHideWhenHiddenIsNoop(t *testing.T) {
	m := New(time.Second)
	assert.Nil(t, m.Hide())
	assert.False(t, m.Visible())
}

func TestDisabledNeverShows(t *testing.T) {
	m := New(time.Second)
	m.Disabled = true

	assert.Nil(t, m.Show())
	assert.False(t, m.Visible())
	assert.False(t, m.Pending())
}

func TestDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultHideDelay, New(0).HideDelay)
}
