package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	dialBaseDelay   = 1 * time.Second
	dialMaxDelay    = 8 * time.Second
	maxDialAttempts = 4
	writeTimeout    = 10 * time.Second
	pongTimeout     = 60 * time.Second
	pingInterval    = 30 * time.Second
)

// Client is a Session backed by a WebSocket link to a remote-play host.
//
// The link is opened by the first Resume and torn down by Shutdown. A failed
// dial or a dropped link is reported as a Quit state; the client never
// reconnects on its own once a link was established.
type Client struct {
	url   string
	token string
	log   zerolog.Logger

	dialer *websocket.Dialer

	states  *Latest[StreamState]
	rumbles *Latest[Rumble]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	writeMu    sync.Mutex // serialises all conn writes
	conn       *websocket.Conn
	gen        uint64 // bumped on every link attempt and teardown
	connecting bool
	paused     bool
	profile    VideoProfile
	sessionID  string
}

// NewClient creates a client for the host at url. profile is used until the
// host announces its own.
func NewClient(url, token string, profile VideoProfile, logger zerolog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:     url,
		token:   token,
		log:     logger,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		states:  NewLatest[StreamState](),
		rumbles: NewLatest[Rumble](),
		ctx:     ctx,
		cancel:  cancel,
		profile: profile,
	}
}

// States implements Session.
func (c *Client) States() *Latest[StreamState] { return c.states }

// Rumbles implements Session.
func (c *Client) Rumbles() *Latest[Rumble] { return c.rumbles }

// VideoProfile implements Session.
func (c *Client) VideoProfile() VideoProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// SessionID returns the id the host assigned, or "" before the first hello.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Resume starts the session if no link is up, otherwise unpauses it.
func (c *Client) Resume() error {
	c.mu.Lock()
	c.paused = false
	conn := c.conn
	if conn == nil {
		if !c.connecting {
			c.connecting = true
			c.gen++
			gen := c.gen
			c.wg.Add(1)
			go c.connect(gen)
		}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.write(conn, MsgResume, nil)
}

// Pause asks the host to hold the stream. While no link is up the request is
// remembered and sent once one is.
func (c *Client) Pause() error {
	c.mu.Lock()
	c.paused = true
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	return c.write(conn, MsgPause, nil)
}

// Shutdown stops the session and closes the link. The states stream reports
// a stopped Quit.
func (c *Client) Shutdown() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.gen++
	c.connecting = false
	c.mu.Unlock()

	var err error
	if conn != nil {
		err = c.write(conn, MsgShutdown, nil)
		conn.Close()
	}
	c.states.Publish(Quit{Reason: QuitStopped})
	return err
}

// SetLoginPin sends the PIN the user entered.
func (c *Client) SetLoginPin(pin string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return c.write(conn, MsgLoginPin, LoginPinPayload{Pin: pin})
}

// Close tears the link down and waits for the client's goroutines to exit.
func (c *Client) Close() {
	c.cancel()
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.gen++
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	c.wg.Wait()
}

func (c *Client) connect(gen uint64) {
	defer c.wg.Done()

	c.states.Publish(Connecting{})

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	var (
		conn *websocket.Conn
		err  error
	)
	delay := dialBaseDelay
	for attempt := 1; attempt <= maxDialAttempts; attempt++ {
		conn, _, err = c.dialer.DialContext(c.ctx, c.url, header)
		if err == nil {
			break
		}
		c.log.Warn().Err(err).Int("attempt", attempt).Str("url", c.url).Msg("host dial failed")
		if attempt == maxDialAttempts {
			break
		}
		select {
		case <-c.ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, dialMaxDelay)
	}

	c.mu.Lock()
	if c.gen != gen || c.ctx.Err() != nil {
		// Shut down while dialing.
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	c.connecting = false
	if err != nil {
		c.mu.Unlock()
		c.states.Publish(Quit{Reason: QuitCtrlConnectFailed, Detail: err.Error()})
		return
	}
	c.conn = conn
	paused := c.paused
	c.mu.Unlock()

	c.log.Info().Str("url", c.url).Msg("host link up")

	if paused {
		if err := c.write(conn, MsgPause, nil); err != nil {
			c.log.Warn().Err(err).Msg("send pause")
		}
	}

	pingCtx, stopPing := context.WithCancel(c.ctx)
	defer stopPing()
	c.wg.Add(1)
	go c.pingLoop(pingCtx, conn)

	c.readLoop(gen, conn)
}

func (c *Client) readLoop(gen uint64, conn *websocket.Conn) {
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	conn.SetReadDeadline(time.Now().Add(pongTimeout))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			current := c.gen == gen
			if current {
				c.conn = nil
			}
			c.mu.Unlock()
			conn.Close()

			if current && c.ctx.Err() == nil {
				c.log.Warn().Err(err).Msg("host link lost")
				c.states.Publish(Quit{Reason: QuitStreamConnectionRemoteDisconnect, Detail: err.Error()})
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Debug().Err(err).Msg("discarding malformed frame")
			continue
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env Envelope) {
	switch env.Type {
	case MsgHello:
		var p HelloPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.log.Debug().Err(err).Msg("bad hello")
			return
		}
		c.mu.Lock()
		c.sessionID = p.SessionID
		if p.Profile.Width > 0 && p.Profile.Height > 0 {
			c.profile = p.Profile
		}
		c.mu.Unlock()
		c.log.Info().Str("session_id", p.SessionID).
			Int("width", p.Profile.Width).Int("height", p.Profile.Height).
			Msg("host hello")

	case MsgState:
		var p StatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.log.Debug().Err(err).Msg("bad state")
			return
		}
		st, err := p.Decode()
		if err != nil {
			c.log.Debug().Err(err).Msg("bad state")
			return
		}
		c.states.Publish(st)

	case MsgRumble:
		var r Rumble
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			c.log.Debug().Err(err).Msg("bad rumble")
			return
		}
		c.rumbles.Publish(r)

	case MsgError:
		var p ErrorPayload
		_ = json.Unmarshal(env.Payload, &p)
		c.log.Warn().Str("message", p.Message).Msg("host rejected command")
	}
}

// pingLoop sends periodic pings on conn. It exits when ctx is cancelled or
// the link changes.
func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	defer c.wg.Done()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) write(conn *websocket.Conn, t MessageType, payload any) error {
	env, err := NewEnvelope(t, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(env); err != nil {
		return fmt.Errorf("send %s: %w", t, err)
	}
	return nil
}
