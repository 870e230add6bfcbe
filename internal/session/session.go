// Package session is the streaming screen's view of a remote-play session:
// the lifecycle state types, the narrow control contract the screen drives,
// and a WebSocket client that reaches a remote-play host.
//
// Decoding, input capture and the stream protocol itself live on the host.
package session

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotConnected is returned by control calls while no host link is up.
var ErrNotConnected = errors.New("session: not connected")

// VideoProfile is the negotiated frame size. It is owned by the session and
// read-only to the screen.
type VideoProfile struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rumble is a haptic feedback request from the host, one amplitude per motor.
type Rumble struct {
	Left  uint8 `json:"left"`
	Right uint8 `json:"right"`
}

// Session is what the streaming screen needs from a session.
type Session interface {
	Resume() error
	Pause() error
	Shutdown() error
	SetLoginPin(pin string) error
	VideoProfile() VideoProfile

	// States and Rumbles are latest-value-wins streams with one consumer.
	States() *Latest[StreamState]
	Rumbles() *Latest[Rumble]
}

// --- Bubble Tea messages ---

// StateMsg delivers the newest stream state.
type StateMsg struct{ State StreamState }

// RumbleMsg delivers the newest rumble request.
type RumbleMsg struct{ Rumble Rumble }

// WatchStates returns a command that waits for the next state. The caller
// re-issues it after every StateMsg.
func WatchStates(ctx context.Context, s Session) tea.Cmd {
	return func() tea.Msg {
		st, err := s.States().Next(ctx)
		if err != nil {
			return nil
		}
		return StateMsg{State: st}
	}
}

// WatchRumbles is WatchStates for rumble requests.
func WatchRumbles(ctx context.Context, s Session) tea.Cmd {
	return func() tea.Msg {
		r, err := s.Rumbles().Next(ctx)
		if err != nil {
			return nil
		}
		return RumbleMsg{Rumble: r}
	}
}
