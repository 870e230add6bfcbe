package session

import (
	"encoding/json"
	"fmt"
)

// MessageType identifies a frame on the host link.
type MessageType string

const (
	// Host → client.
	MsgHello  MessageType = "hello"
	MsgState  MessageType = "state"
	MsgRumble MessageType = "rumble"
	MsgError  MessageType = "error"

	// Client → host.
	MsgResume   MessageType = "resume"
	MsgPause    MessageType = "pause"
	MsgShutdown MessageType = "shutdown"
	MsgLoginPin MessageType = "login_pin"
)

// Envelope wraps every frame in both directions.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload into an envelope. A nil payload is omitted.
func NewEnvelope(t MessageType, payload any) (Envelope, error) {
	env := Envelope{Type: t}
	if payload == nil {
		return env, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	env.Payload = data
	return env, nil
}

// HelloPayload is the first frame a host sends.
type HelloPayload struct {
	SessionID string       `json:"sessionId"`
	Profile   VideoProfile `json:"profile"`
}

// LoginPinPayload carries a PIN entered by the user.
type LoginPinPayload struct {
	Pin string `json:"pin"`
}

// ErrorPayload reports a rejected command.
type ErrorPayload struct {
	Message string `json:"message"`
}

// StatePayload is the wire form of a StreamState.
type StatePayload struct {
	State        string     `json:"state"`
	Reason       QuitReason `json:"reason,omitempty"`
	ReasonDetail string     `json:"reasonDetail,omitempty"`
	ErrorCode    ErrorCode  `json:"errorCode,omitempty"`
	PinIncorrect bool       `json:"pinIncorrect,omitempty"`
}

const (
	wireIdle            = "idle"
	wireConnecting      = "connecting"
	wireRunning         = "running"
	wireQuit            = "quit"
	wireCreateError     = "create_error"
	wireLoginPinRequest = "login_pin_request"
)

// EncodeState converts s to its wire form.
func EncodeState(s StreamState) StatePayload {
	switch s := s.(type) {
	case Connecting:
		return StatePayload{State: wireConnecting}
	case Running:
		return StatePayload{State: wireRunning}
	case Quit:
		return StatePayload{State: wireQuit, Reason: s.Reason, ReasonDetail: s.Detail}
	case CreateError:
		return StatePayload{State: wireCreateError, ErrorCode: s.Code}
	case LoginPinRequest:
		return StatePayload{State: wireLoginPinRequest, PinIncorrect: s.PinIncorrect}
	default:
		return StatePayload{State: wireIdle}
	}
}

// Decode converts the wire form back to a StreamState.
func (p StatePayload) Decode() (StreamState, error) {
	switch p.State {
	case wireIdle:
		return Idle{}, nil
	case wireConnecting:
		return Connecting{}, nil
	case wireRunning:
		return Running{}, nil
	case wireQuit:
		reason := p.Reason
		if reason == "" {
			reason = QuitNone
		}
		return Quit{Reason: reason, Detail: p.ReasonDetail}, nil
	case wireCreateError:
		return CreateError{Code: p.ErrorCode}, nil
	case wireLoginPinRequest:
		return LoginPinRequest{PinIncorrect: p.PinIncorrect}, nil
	default:
		return nil, fmt.Errorf("unknown stream state %q", p.State)
	}
}
