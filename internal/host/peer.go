package host

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/remoteplay/tui/internal/session"
)

const (
	sendBuffer   = 64
	writeWait    = 5 * time.Second
	commandRate  = 10 // per second
	commandBurst = 5
)

// peer is one connected client and its scripted session.
type peer struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	script   *Script
	profile  session.VideoProfile
	interval time.Duration
	limiter  *rate.Limiter
	log      zerolog.Logger
}

func newPeer(id string, conn *websocket.Conn, script *Script, profile session.VideoProfile, interval time.Duration, logger zerolog.Logger) *peer {
	return &peer{
		id:       id,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		script:   script,
		profile:  profile,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Limit(commandRate), commandBurst),
		log:      logger.With().Str("peer", id).Logger(),
	}
}

// writePump owns all data writes. It closes the connection once send is
// closed or a write fails.
func (p *peer) writePump() {
	defer p.conn.Close()
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			p.log.Debug().Err(err).Msg("write failed")
			return
		}
	}
}

func (p *peer) enqueue(env session.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		p.log.Error().Err(err).Str("type", string(env.Type)).Msg("marshal frame")
		return
	}
	select {
	case p.send <- data:
	default:
		p.log.Warn().Str("type", string(env.Type)).Msg("client too slow, dropping frame")
	}
}

func (p *peer) emit(events []Event) {
	for _, e := range events {
		env, err := e.Envelope()
		if err != nil {
			p.log.Error().Err(err).Msg("encode event")
			continue
		}
		if e.State != nil {
			p.log.Debug().Str("state", session.StateName(e.State)).Msg("state")
		}
		p.enqueue(env)
	}
}

func (p *peer) reject(msg string) {
	env, err := session.NewEnvelope(session.MsgError, session.ErrorPayload{Message: msg})
	if err == nil {
		p.enqueue(env)
	}
}

// run plays the script until ctx is done or the client goes away.
func (p *peer) run(ctx context.Context) {
	cmds := make(chan session.Envelope)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		p.readLoop(ctx, cmds)
	}()
	go p.writePump()
	defer func() {
		close(p.send)
		<-readDone
	}()

	hello, err := session.NewEnvelope(session.MsgHello, session.HelloPayload{SessionID: p.id, Profile: p.profile})
	if err != nil {
		p.log.Error().Err(err).Msg("encode hello")
		return
	}
	p.enqueue(hello)
	p.emit(p.script.Start())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-readDone:
			return
		case env := <-cmds:
			p.handle(env)
		case <-ticker.C:
			p.emit(p.script.Tick())
		}
	}
}

func (p *peer) readLoop(ctx context.Context, cmds chan<- session.Envelope) {
	for {
		var env session.Envelope
		if err := p.conn.ReadJSON(&env); err != nil {
			return
		}
		select {
		case cmds <- env:
		case <-ctx.Done():
			return
		}
	}
}

func (p *peer) handle(env session.Envelope) {
	if !p.limiter.Allow() {
		p.log.Warn().Str("type", string(env.Type)).Msg("command rate limited")
		p.reject("rate limited")
		return
	}

	p.log.Info().Str("type", string(env.Type)).Msg("command")
	switch env.Type {
	case session.MsgResume:
		p.emit(p.script.Resume())
	case session.MsgPause:
		p.script.Pause()
	case session.MsgShutdown:
		p.emit(p.script.Shutdown())
	case session.MsgLoginPin:
		var pl session.LoginPinPayload
		if err := json.Unmarshal(env.Payload, &pl); err != nil {
			p.reject("bad login_pin payload")
			return
		}
		p.emit(p.script.SubmitPin(pl.Pin))
	default:
		p.reject("unknown command " + string(env.Type))
	}
}
