// Package router turns stream lifecycle states into what the streaming
// screen shows: the progress indicator and the session dialogs. User
// answers to those dialogs are routed back to the session.
package router

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/remoteplay/tui/internal/dialog"
	"github.com/remoteplay/tui/internal/session"
)

// Session is the part of a session the router drives.
type Session interface {
	Resume() error
	Shutdown() error
	SetLoginPin(pin string) error
}

// Dialog texts.
const (
	MessagePin          = "Enter the login PIN shown on the console."
	MessagePinIncorrect = "The login PIN was incorrect. Enter the PIN shown on the console."
	LabelReconnect      = "Reconnect"
	LabelQuit           = "Quit"
	LabelConnect        = "Connect"
)

// Router interprets stream states. It is driven from the Bubble Tea update
// loop and is not safe for concurrent use.
type Router struct {
	session Session
	dialogs *dialog.Controller
	log     zerolog.Logger

	progress bool
	finished bool
	lastErr  error
}

// New creates a router that presents dialogs through dialogs.
func New(s Session, dialogs *dialog.Controller, logger zerolog.Logger) *Router {
	return &Router{
		session: s,
		dialogs: dialogs,
		log:     logger,
	}
}

// ProgressVisible reports whether the progress indicator should show.
func (r *Router) ProgressVisible() bool { return r.progress }

// Finished reports whether the user chose to leave the screen. A finished
// router ignores further states.
func (r *Router) Finished() bool { return r.finished }

// Err returns the most recent error from a session command, then forgets it.
func (r *Router) Err() error {
	err := r.lastErr
	r.lastErr = nil
	return err
}

// Handle applies the newest stream state. States are level-triggered: the
// same state may arrive any number of times.
func (r *Router) Handle(state session.StreamState) tea.Cmd {
	if r.finished {
		return nil
	}

	_, r.progress = state.(session.Connecting)

	switch s := state.(type) {
	case session.Quit:
		if s.Reason.IsStopped() {
			return nil
		}
		return r.dialogs.Present(dialog.KindQuit, func() *dialog.Dialog {
			return r.quitDialog(s)
		})

	case session.CreateError:
		return r.dialogs.Present(dialog.KindCreateError, func() *dialog.Dialog {
			return r.createErrorDialog(s)
		})

	case session.LoginPinRequest:
		return r.dialogs.Present(dialog.KindPinRequest, func() *dialog.Dialog {
			return r.pinDialog(s)
		})
	}

	// Idle, Connecting and Running leave any dialog alone.
	return nil
}

// QuitMessage is the text of the quit dialog for s.
func QuitMessage(s session.Quit) string {
	msg := fmt.Sprintf("The session has quit: %s", s.Reason)
	if s.Detail != "" {
		msg += "\n" + s.Detail
	}
	return msg
}

// CreateErrorMessage is the text of the create-error dialog for s.
func CreateErrorMessage(s session.CreateError) string {
	return fmt.Sprintf("The session could not be created. Error code %s.", s.Code)
}

func (r *Router) quitDialog(s session.Quit) *dialog.Dialog {
	r.log.Info().Str("reason", string(s.Reason)).Str("detail", s.Detail).Msg("session quit")
	return &dialog.Dialog{
		Title:   "Session quit",
		Message: QuitMessage(s),
		Buttons: []dialog.Button{
			{Label: LabelReconnect, Action: func(string) { r.reconnect() }},
			{Label: LabelQuit, Action: func(string) { r.finish() }},
		},
		OnCancel: func(string) { r.finish() },
	}
}

func (r *Router) createErrorDialog(s session.CreateError) *dialog.Dialog {
	r.log.Error().Int("code", int(s.Code)).Msg("session create failed")
	return &dialog.Dialog{
		Title:   "Session error",
		Message: CreateErrorMessage(s),
		Buttons: []dialog.Button{
			{Label: LabelQuit},
		},
		OnDismiss: r.finish,
	}
}

func (r *Router) pinDialog(s session.LoginPinRequest) *dialog.Dialog {
	msg := MessagePin
	if s.PinIncorrect {
		msg = MessagePinIncorrect
	}
	d := &dialog.Dialog{
		Title:   "Login PIN",
		Message: msg,
		Buttons: []dialog.Button{
			{Label: LabelConnect, Action: r.submitPin},
			{Label: LabelQuit, Action: func(string) { r.finish() }},
		},
		OnCancel: func(string) { r.finish() },
	}
	return d.WithInput("PIN", true)
}

func (r *Router) reconnect() {
	r.log.Info().Msg("reconnecting")
	if err := r.session.Shutdown(); err != nil {
		r.fail("shutdown", err)
	}
	if err := r.session.Resume(); err != nil {
		r.fail("resume", err)
	}
}

func (r *Router) submitPin(pin string) {
	if err := r.session.SetLoginPin(pin); err != nil {
		r.fail("set login pin", err)
	}
}

func (r *Router) finish() {
	r.log.Info().Msg("leaving stream screen")
	r.finished = true
}

func (r *Router) fail(op string, err error) {
	r.log.Warn().Err(err).Str("op", op).Msg("session command failed")
	r.lastErr = fmt.Errorf("%s: %w", op, err)
}
