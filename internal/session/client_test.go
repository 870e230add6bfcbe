package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeHost upgrades one connection, sends the scripted frames and forwards
// every frame it receives.
func fakeHost(t *testing.T, script []Envelope, received chan<- Envelope) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, env := range script {
			if err := conn.WriteJSON(env); err != nil {
				return
			}
		}
		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			received <- env
		}
	}))
}

func mustEnvelope(t *testing.T, typ MessageType, payload any) Envelope {
	t.Helper()
	env, err := NewEnvelope(typ, payload)
	require.NoError(t, err)
	return env
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/session"
}

func waitForState(t *testing.T, c *Client, match func(StreamState) bool) StreamState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for {
		st, err := c.States().Next(ctx)
		require.NoError(t, err, "timed out waiting for state")
		if match(st) {
			return st
		}
	}
}

func TestClientDeliversHostStatesAndSendsPin(t *testing.T) {
	defer goleak.VerifyNone(t)

	received := make(chan Envelope, 8)
	srv := fakeHost(t, []Envelope{
		mustEnvelope(t, MsgHello, HelloPayload{SessionID: "abc", Profile: VideoProfile{Width: 1280, Height: 720}}),
		mustEnvelope(t, MsgState, EncodeState(Connecting{})),
		mustEnvelope(t, MsgState, EncodeState(LoginPinRequest{})),
	}, received)
	defer srv.Close()

	c := NewClient(wsURL(srv), "secret", VideoProfile{Width: 1920, Height: 1080}, zerolog.Nop())
	defer c.Close()

	require.NoError(t, c.Resume())
	waitForState(t, c, func(s StreamState) bool {
		_, ok := s.(LoginPinRequest)
		return ok
	})

	assert.Equal(t, VideoProfile{Width: 1280, Height: 720}, c.VideoProfile())
	assert.Equal(t, "abc", c.SessionID())

	require.NoError(t, c.SetLoginPin("1234"))
	select {
	case env := <-received:
		require.Equal(t, MsgLoginPin, env.Type)
		var p LoginPinPayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		assert.Equal(t, "1234", p.Pin)
	case <-time.After(2 * time.Second):
		t.Fatal("host never received the pin")
	}
}

func TestClientRumbles(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := fakeHost(t, []Envelope{
		mustEnvelope(t, MsgRumble, Rumble{Left: 200, Right: 100}),
	}, make(chan Envelope, 8))
	defer srv.Close()

	c := NewClient(wsURL(srv), "secret", VideoProfile{Width: 1920, Height: 1080}, zerolog.Nop())
	defer c.Close()
	require.NoError(t, c.Resume())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	r, err := c.Rumbles().Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Rumble{Left: 200, Right: 100}, r)
}

func TestClientShutdownReportsStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	received := make(chan Envelope, 8)
	srv := fakeHost(t, []Envelope{
		mustEnvelope(t, MsgState, EncodeState(Running{})),
	}, received)
	defer srv.Close()

	c := NewClient(wsURL(srv), "secret", VideoProfile{Width: 1920, Height: 1080}, zerolog.Nop())
	defer c.Close()

	require.NoError(t, c.Resume())
	waitForState(t, c, func(s StreamState) bool { return s == Running{} })

	require.NoError(t, c.Shutdown())
	st := waitForState(t, c, func(s StreamState) bool {
		_, ok := s.(Quit)
		return ok
	})
	assert.True(t, st.(Quit).Reason.IsStopped())

	select {
	case env := <-received:
		assert.Equal(t, MsgShutdown, env.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("host never received shutdown")
	}

	assert.ErrorIs(t, c.SetLoginPin("0000"), ErrNotConnected)
}

func TestClientRejectedDialQuits(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := fakeHost(t, nil, make(chan Envelope, 1))
	defer srv.Close()

	// Wrong token: every dial is refused.
	c := NewClient(wsURL(srv), "wrong", VideoProfile{Width: 1920, Height: 1080}, zerolog.Nop())
	defer c.Close()
	c.dialer.HandshakeTimeout = time.Second

	require.NoError(t, c.Resume())
	st := waitForState(t, c, func(s StreamState) bool {
		_, ok := s.(Connecting)
		return ok
	})
	assert.Equal(t, Connecting{}, st)

	// The remaining attempts back off for several seconds; Close must not
	// wait for them.
	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on dial backoff")
	}
}
