// Package host implements a simulated remote-play host: a WebSocket server
// that plays scripted session lifecycles to connected clients.
package host

import (
	"fmt"

	"github.com/remoteplay/tui/internal/session"
)

// Scenario names a scripted session lifecycle.
type Scenario string

const (
	// ScenarioHappy connects straight to running.
	ScenarioHappy Scenario = "happy"
	// ScenarioPin asks for a login PIN before running.
	ScenarioPin Scenario = "pin"
	// ScenarioQuit runs for a while, then the console ends the stream.
	ScenarioQuit Scenario = "quit"
	// ScenarioCreateError fails to create the session.
	ScenarioCreateError Scenario = "create_error"
)

// ParseScenario validates a scenario name.
func ParseScenario(s string) (Scenario, error) {
	switch sc := Scenario(s); sc {
	case ScenarioHappy, ScenarioPin, ScenarioQuit, ScenarioCreateError:
		return sc, nil
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

const (
	connectTicks = 1
	quitAfter    = 4
	quitDetail   = "The console closed the stream."
)

var rumblePattern = []session.Rumble{
	{Left: 200, Right: 100},
	{},
	{Left: 255, Right: 255},
	{Left: 60, Right: 20},
	{},
}

// Event is one thing the script wants sent to the client.
type Event struct {
	State  session.StreamState
	Rumble *session.Rumble
}

// Envelope converts the event to a wire frame.
func (e Event) Envelope() (session.Envelope, error) {
	if e.Rumble != nil {
		return session.NewEnvelope(session.MsgRumble, *e.Rumble)
	}
	return session.NewEnvelope(session.MsgState, session.EncodeState(e.State))
}

// Script is the state machine behind one connection. It is driven by a
// single goroutine and is not safe for concurrent use.
type Script struct {
	scenario Scenario
	pin      string

	state  session.StreamState
	ticks  int
	paused bool
	rumble int
}

// NewScript returns an idle script.
func NewScript(sc Scenario, pin string) *Script {
	return &Script{scenario: sc, pin: pin, state: session.Idle{}}
}

// State returns the current stream state.
func (s *Script) State() session.StreamState { return s.state }

// Paused reports whether the client asked the host to hold the stream.
func (s *Script) Paused() bool { return s.paused }

// Start begins the session from the top.
func (s *Script) Start() []Event {
	s.paused = false
	s.rumble = 0
	return s.enter(session.Connecting{})
}

func (s *Script) enter(st session.StreamState) []Event {
	s.state = st
	s.ticks = 0
	return []Event{{State: st}}
}

// Tick advances the script by one step.
func (s *Script) Tick() []Event {
	if s.paused {
		return nil
	}
	s.ticks++

	switch st := s.state.(type) {
	case session.Connecting:
		if s.ticks < connectTicks {
			return nil
		}
		switch s.scenario {
		case ScenarioPin:
			return s.enter(session.LoginPinRequest{})
		case ScenarioCreateError:
			return s.enter(session.CreateError{Code: session.CodeHostUnreach})
		default:
			return s.enter(session.Running{})
		}

	case session.LoginPinRequest:
		// States are level-triggered; keep announcing until answered.
		return []Event{{State: st}}

	case session.Running:
		if s.scenario == ScenarioQuit && s.ticks >= quitAfter {
			return s.enter(session.Quit{
				Reason: session.QuitStreamConnectionRemoteShutdown,
				Detail: quitDetail,
			})
		}
		r := rumblePattern[s.rumble%len(rumblePattern)]
		s.rumble++
		return []Event{{Rumble: &r}}
	}
	return nil
}

// SubmitPin checks a PIN. It is ignored unless a PIN was requested.
func (s *Script) SubmitPin(pin string) []Event {
	if _, ok := s.state.(session.LoginPinRequest); !ok {
		return nil
	}
	if pin == s.pin {
		return s.enter(session.Running{})
	}
	return s.enter(session.LoginPinRequest{PinIncorrect: true})
}

// Pause holds the stream.
func (s *Script) Pause() { s.paused = true }

// Resume releases a held stream, or restarts a session that has ended.
func (s *Script) Resume() []Event {
	s.paused = false
	switch s.state.(type) {
	case session.Idle, session.Quit:
		return s.Start()
	}
	return nil
}

// Shutdown ends the session at the client's request.
func (s *Script) Shutdown() []Event {
	s.paused = false
	return s.enter(session.Quit{Reason: session.QuitStopped})
}
