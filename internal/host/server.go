package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/session"
)

const shutdownTimeout = 5 * time.Second

// Server serves simulated sessions on /session.
type Server struct {
	cfg      config.SimulatorConfig
	scenario Scenario
	profile  session.VideoProfile
	log      zerolog.Logger
	upgrader websocket.Upgrader

	wg    sync.WaitGroup
	peers atomic.Int64
}

// NewServer validates cfg and returns a server that announces profile to
// every client.
func NewServer(cfg config.SimulatorConfig, profile session.VideoProfile, logger zerolog.Logger) (*Server, error) {
	sc, err := ParseScenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	if cfg.StepInterval <= 0 {
		return nil, fmt.Errorf("step_interval must be positive, got %s", cfg.StepInterval)
	}
	return &Server{
		cfg:      cfg,
		scenario: sc,
		profile:  profile,
		log:      logger,
	}, nil
}

// Handler returns the HTTP routes. Sessions end when ctx is done.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		s.handleSession(ctx, w, r)
	})
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// PeerCount returns the number of connected clients.
func (s *Server) PeerCount() int { return int(s.peers.Load()) }

// Wait blocks until every session has ended.
func (s *Server) Wait() { s.wg.Wait() }

func (s *Server) authorize(r *http.Request) bool {
	if s.cfg.Token == "" {
		return true
	}
	if r.URL.Query().Get("token") == s.cfg.Token {
		return true
	}
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.cfg.Token
}

func (s *Server) handleSession(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.peers.Add(1)
	defer s.peers.Add(-1)

	id := uuid.NewString()
	s.log.Info().Str("peer", id).Str("remote", r.RemoteAddr).Str("scenario", string(s.scenario)).Msg("client connected")

	p := newPeer(id, conn, NewScript(s.scenario, s.cfg.LoginPin), s.profile, s.cfg.StepInterval, s.log)
	p.run(ctx)

	s.log.Info().Str("peer", id).Msg("client disconnected")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"scenario": s.scenario,
		"peers":    s.PeerCount(),
	})
}

// ListenAndServe serves on cfg.Listen until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", s.cfg.Listen).Str("scenario", string(s.scenario)).Msg("host listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.wg.Wait()
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	return err
}
