package router

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/remoteplay/tui/internal/dialog"
	"github.com/remoteplay/tui/internal/session"
)

type mockSession struct {
	mock.Mock
	calls []string
}

func (m *mockSession) Resume() error {
	m.calls = append(m.calls, "resume")
	return m.Called().Error(0)
}

func (m *mockSession) Shutdown() error {
	m.calls = append(m.calls, "shutdown")
	return m.Called().Error(0)
}

func (m *mockSession) SetLoginPin(pin string) error {
	m.calls = append(m.calls, "pin:"+pin)
	return m.Called(pin).Error(0)
}

func newRouter(t *testing.T) (*Router, *mockSession, *dialog.Controller) {
	t.Helper()
	s := &mockSession{}
	d := dialog.NewController()
	return New(s, d, zerolog.Nop()), s, d
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func TestProgressVisibility(t *testing.T) {
	r, _, d := newRouter(t)

	tests := []struct {
		state session.StreamState
		want  bool
	}{
		{session.Idle{}, false},
		{session.Connecting{}, true},
		{session.Running{}, false},
		{session.Connecting{}, true},
		{session.Quit{Reason: session.QuitStopped}, false},
	}
	for _, tt := range tests {
		r.Handle(tt.state)
		assert.Equal(t, tt.want, r.ProgressVisible(), session.StateName(tt.state))
	}
	assert.Equal(t, dialog.KindNone, d.Kind())
}

func TestStoppedQuitShowsNoDialog(t *testing.T) {
	r, s, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitStopped})

	assert.Equal(t, dialog.KindNone, d.Kind())
	assert.False(t, r.ProgressVisible())
	assert.Empty(t, s.calls)
}

func TestQuitDialogMessage(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitStreamConnectionRemoteDisconnect, Detail: "peer reset"})

	require.Equal(t, dialog.KindQuit, d.Kind())
	assert.Equal(t,
		"The session has quit: Remote has disconnected from Stream Connection\npeer reset",
		d.Current().Message)

	r2, _, d2 := newRouter(t)
	r2.Handle(session.Quit{Reason: session.QuitCtrlUnknown})
	assert.Equal(t, "The session has quit: Unknown Ctrl Error", d2.Current().Message)
}

func TestQuitReconnect(t *testing.T) {
	r, s, d := newRouter(t)
	s.On("Shutdown").Return(nil)
	s.On("Resume").Return(nil)

	r.Handle(session.Quit{Reason: session.QuitCtrlConnectFailed})
	d.Update(keyEnter) // Reconnect is focused first

	assert.Equal(t, []string{"shutdown", "resume"}, s.calls)
	assert.Equal(t, dialog.KindNone, d.Kind())
	assert.False(t, r.Finished())
	s.AssertExpectations(t)

	// The reconnect attempt fails again: the dialog comes back.
	r.Handle(session.Connecting{})
	r.Handle(session.Quit{Reason: session.QuitCtrlConnectFailed})
	assert.Equal(t, dialog.KindQuit, d.Kind())
}

func TestQuitButtonFinishes(t *testing.T) {
	r, s, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitCtrlUnknown})

	d.Update(keyRight)
	d.Update(keyEnter)

	assert.True(t, r.Finished())
	assert.Empty(t, s.calls)
	assert.Equal(t, dialog.KindNone, d.Kind())
}

func TestQuitCancelFinishes(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitCtrlUnknown})
	d.Update(keyEsc)
	assert.True(t, r.Finished())
}

func TestCreateErrorAlwaysFinishes(t *testing.T) {
	for name, key := range map[string]tea.KeyMsg{"button": keyEnter, "cancel": keyEsc} {
		t.Run(name, func(t *testing.T) {
			r, _, d := newRouter(t)
			r.Handle(session.CreateError{Code: session.CodeHostUnreach})

			require.Equal(t, dialog.KindCreateError, d.Kind())
			assert.Contains(t, d.Current().Message, "9")
			d.Update(key)
			assert.True(t, r.Finished())
		})
	}
}

func TestPinSubmit(t *testing.T) {
	r, s, d := newRouter(t)
	s.On("SetLoginPin", "2468").Return(nil)

	r.Handle(session.LoginPinRequest{})
	require.Equal(t, dialog.KindPinRequest, d.Kind())
	assert.Equal(t, MessagePin, d.Current().Message)
	assert.True(t, d.Current().HasInput())

	d.Current().SetInput("2468")
	d.Update(keyEnter)

	assert.Equal(t, []string{"pin:2468"}, s.calls)
	assert.Equal(t, dialog.KindNone, d.Kind())

	// The host rejects it: a fresh dialog says so.
	r.Handle(session.LoginPinRequest{PinIncorrect: true})
	require.Equal(t, dialog.KindPinRequest, d.Kind())
	assert.Equal(t, MessagePinIncorrect, d.Current().Message)
	assert.Empty(t, d.Current().Input())
}

func TestPinIncorrectWhileShowingIsNotRefreshed(t *testing.T) {
	r, _, d := newRouter(t)

	r.Handle(session.LoginPinRequest{PinIncorrect: false})
	first := d.Current()
	r.Handle(session.LoginPinRequest{PinIncorrect: true})

	assert.Same(t, first, d.Current(), "same kind keeps the dialog")
	assert.Equal(t, MessagePin, d.Current().Message, "message is not refreshed")
}

func TestPinQuitAndCancel(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.LoginPinRequest{})
	d.Update(keyRight)
	d.Update(keyEnter)
	assert.True(t, r.Finished())

	r2, _, d2 := newRouter(t)
	r2.Handle(session.LoginPinRequest{})
	d2.Update(keyEsc)
	assert.True(t, r2.Finished())
}

func TestRunningLeavesDialogAlone(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitCtrlUnknown})
	r.Handle(session.Running{})
	r.Handle(session.Idle{})
	assert.Equal(t, dialog.KindQuit, d.Kind())
}

func TestKindChangeReplacesDialog(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.LoginPinRequest{})
	pin := d.Current()
	r.Handle(session.Quit{Reason: session.QuitCtrlUnknown})

	assert.False(t, pin.Visible())
	assert.Equal(t, dialog.KindQuit, d.Kind())
}

func TestFinishedIgnoresStates(t *testing.T) {
	r, _, d := newRouter(t)
	r.Handle(session.Quit{Reason: session.QuitCtrlUnknown})
	d.Update(keyEsc)
	require.True(t, r.Finished())

	r.Handle(session.Connecting{})
	r.Handle(session.CreateError{Code: session.CodeTimeout})
	assert.Equal(t, dialog.KindNone, d.Kind())
	assert.False(t, r.ProgressVisible())
}

func TestSessionErrorsAreReported(t *testing.T) {
	r, s, d := newRouter(t)
	s.On("SetLoginPin", "").Return(session.ErrNotConnected)

	r.Handle(session.LoginPinRequest{})
	d.Update(keyEnter)

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrNotConnected))
	assert.NoError(t, r.Err(), "Err forgets after reading")
}
