package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuitFromWire(t *testing.T) {
	raw := `{"state":"quit","reason":"stream_connection_remote_disconnected","reasonDetail":"peer went away"}`

	var p StatePayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	st, err := p.Decode()
	require.NoError(t, err)

	q, ok := st.(Quit)
	require.True(t, ok, "got %T", st)
	assert.Equal(t, QuitStreamConnectionRemoteDisconnect, q.Reason)
	assert.Equal(t, "peer went away", q.Detail)
	assert.False(t, q.Reason.IsStopped())
}

func TestDecodeQuitWithoutReason(t *testing.T) {
	st, err := StatePayload{State: "quit"}.Decode()
	require.NoError(t, err)
	assert.Equal(t, Quit{Reason: QuitNone}, st)
}

func TestDecodeUnknownState(t *testing.T) {
	_, err := StatePayload{State: "exploded"}.Decode()
	assert.Error(t, err)
}

func TestEncodeLoginPinRequest(t *testing.T) {
	p := EncodeState(LoginPinRequest{PinIncorrect: true})
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"login_pin_request","pinIncorrect":true}`, string(data))
}

func TestNewEnvelopeWithoutPayload(t *testing.T) {
	env, err := NewEnvelope(MsgShutdown, nil)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"shutdown"}`, string(data))
}

func TestStateName(t *testing.T) {
	tests := []struct {
		state StreamState
		want  string
	}{
		{Idle{}, "idle"},
		{Connecting{}, "connecting"},
		{Running{}, "running"},
		{Quit{Reason: QuitStopped}, "quit: Stopped"},
		{CreateError{Code: CodeHostUnreach}, "create error: 9 (No route to host)"},
		{LoginPinRequest{}, "login pin"},
		{LoginPinRequest{PinIncorrect: true}, "login pin (incorrect)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StateName(tt.state))
	}
}

func TestQuitReasonStoppedClass(t *testing.T) {
	assert.True(t, QuitStopped.IsStopped())
	for r := range quitReasonText {
		if r != QuitStopped {
			assert.False(t, r.IsStopped(), "%s", r)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "15 (Timeout)", CodeTimeout.String())
	assert.Equal(t, "404", ErrorCode(404).String())
}
