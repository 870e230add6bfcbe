package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/dialog"
	"github.com/remoteplay/tui/internal/geometry"
	"github.com/remoteplay/tui/internal/haptics"
	"github.com/remoteplay/tui/internal/overlay"
	"github.com/remoteplay/tui/internal/router"
	"github.com/remoteplay/tui/internal/session"
	"github.com/remoteplay/tui/internal/theme"
	"github.com/remoteplay/tui/internal/views/controls"
	"github.com/remoteplay/tui/internal/views/eventlog"
	"github.com/remoteplay/tui/internal/views/info"
	"github.com/remoteplay/tui/internal/views/status"
	"github.com/remoteplay/tui/internal/views/surface"
)

// Panel identifies which flyout is open.
type Panel int

const (
	PanelNone Panel = iota
	PanelInfo
	PanelEvents
)

const (
	statusHeight   = 3
	helpHeight     = 1
	controlsWidth  = 56
	meterRefreshIn = time.Second + 50*time.Millisecond
)

// opResultMsg reports the outcome of a session command run off the update
// loop.
type opResultMsg struct {
	op  string
	err error
}

// meterMsg re-renders the rumble meter after an effect ends.
type meterMsg struct{}

type identified interface {
	SessionID() string
}

// Model is the root Bubble Tea model of the stream screen.
type Model struct {
	sess   session.Session
	cfg    *config.Config
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	help   help.Model
	width  int
	height int

	dialogs  *dialog.Controller
	router   *router.Router
	overlay  overlay.Model
	controls controls.Model
	haptics  *haptics.Handler
	meter    *haptics.Meter

	statusBar status.Model
	surface   surface.Model
	events    eventlog.Model
	info      info.Model
	panel     Panel

	state     session.StreamState
	immersive bool
	startCmds []tea.Cmd
}

// New creates the root model for s.
func New(s session.Session, cfg *config.Config, logger zerolog.Logger) Model {
	ctx, cancel := context.WithCancel(context.Background())
	dialogs := dialog.NewController()
	policy := cfg.DisplayPolicy()
	tv := cfg.Preferences.TVMode

	m := Model{
		sess:      s,
		cfg:       cfg,
		log:       logger,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dialogs:   dialogs,
		router:    router.New(s, dialogs, logger),
		overlay:   overlay.New(cfg.Preferences.OverlayHideDelay),
		controls:  controls.New(policy, tv),
		meter:     haptics.NewMeter(),
		statusBar: status.New(),
		surface:   surface.New(cfg.Preferences.RenderTarget, cfg.Preferences.CellAspect),
		events:    eventlog.New(),
		state:     session.Idle{},
	}
	m.surface.Policy = policy
	m.overlay.Disabled = tv
	if cfg.Preferences.Rumble {
		m.haptics = haptics.NewHandler(m.meter, logger)
	}
	m.startCmds = append(m.startCmds, m.overlay.Show())
	m.sync()
	return m
}

// Init resumes the session and starts watching it.
func (m Model) Init() tea.Cmd {
	s := m.sess
	cmds := []tea.Cmd{
		func() tea.Msg { return opResultMsg{op: "resume", err: s.Resume()} },
		session.WatchStates(m.ctx, s),
		session.WatchRumbles(m.ctx, s),
	}
	return tea.Batch(append(cmds, m.startCmds...)...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statusBar.Width = msg.Width
		m.surface.SetSize(msg.Width, max(msg.Height-statusHeight-helpHeight, 0))

	case session.StateMsg:
		cmds = append(cmds, m.handleState(msg.State), session.WatchStates(m.ctx, m.sess))

	case session.RumbleMsg:
		if m.haptics != nil {
			m.haptics.Handle(msg.Rumble)
			m.events.Addf(eventlog.KindRumble, "rumble %d/%d → %d", msg.Rumble.Left, msg.Rumble.Right, haptics.Amplitude(msg.Rumble))
			cmds = append(cmds, tea.Tick(meterRefreshIn, func(time.Time) tea.Msg { return meterMsg{} }))
		}
		cmds = append(cmds, session.WatchRumbles(m.ctx, m.sess))

	case opResultMsg:
		if msg.err != nil {
			m.events.Addf(eventlog.KindError, "%s: %v", msg.op, msg.err)
			m.log.Warn().Err(msg.err).Str("op", msg.op).Msg("session command failed")
		}

	case overlay.HideMsg, overlay.FrameMsg:
		cmds = append(cmds, m.overlay.Update(msg))

	case overlay.ExpiredMsg:
		cmds = append(cmds, m.enterImmersion())

	case tea.FocusMsg:
		cmds = append(cmds, m.enterImmersion())

	case tea.ResumeMsg:
		m.events.Add(eventlog.KindUI, "foreground")
		if err := m.sess.Resume(); err != nil {
			m.events.Addf(eventlog.KindError, "resume: %v", err)
		}

	case spinner.TickMsg:
		cmds = append(cmds, m.surface.Update(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.dialogs.Current() == nil {
			cmds = append(cmds, m.leaveImmersion())
		}

	case tea.KeyMsg:
		if m.dialogs.Current() != nil && msg.Type != tea.KeyCtrlC && !key.Matches(msg, m.keys.Suspend) {
			_, cmd := m.dialogs.Update(msg)
			cmds = append(cmds, cmd)
			break
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case meterMsg:

	default:
		// Cursor blinks and other widget messages belong to the dialog.
		if _, cmd := m.dialogs.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if err := m.router.Err(); err != nil {
		m.events.Add(eventlog.KindError, err.Error())
	}
	if m.router.Finished() {
		m.cancel()
		return m, tea.Quit
	}
	cmds = append(cmds, m.surface.SetProgress(m.router.ProgressVisible()))
	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleState(s session.StreamState) tea.Cmd {
	m.state = s
	m.events.Add(eventlog.KindState, session.StateName(s))
	m.log.Debug().Str("state", session.StateName(s)).Msg("stream state")
	return m.router.Handle(s)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return nil, true

	case key.Matches(msg, m.keys.Suspend):
		m.events.Add(eventlog.KindUI, "background")
		if err := m.sess.Pause(); err != nil {
			m.events.Addf(eventlog.KindError, "pause: %v", err)
		}
		return tea.Suspend, false

	case key.Matches(msg, m.keys.Fit):
		return m.setPolicy(geometry.Fit), false
	case key.Matches(msg, m.keys.Stretch):
		return m.setPolicy(geometry.Stretch), false
	case key.Matches(msg, m.keys.Zoom):
		return m.setPolicy(geometry.Zoom), false
	case key.Matches(msg, m.keys.CycleMode):
		return m.setPolicy(m.controls.Policy.Next()), false

	case key.Matches(msg, m.keys.OnScreen):
		if m.controls.ToggleOnScreen() {
			return m.overlay.Show(), false
		}
	case key.Matches(msg, m.keys.Touchpad):
		if m.controls.ToggleTouchpad() {
			return m.overlay.Show(), false
		}

	case key.Matches(msg, m.keys.Reveal):
		return m.leaveImmersion(), false

	case key.Matches(msg, m.keys.Info):
		m.togglePanel(PanelInfo)
	case key.Matches(msg, m.keys.Events):
		m.togglePanel(PanelEvents)

	case key.Matches(msg, m.keys.ScrollUp):
		if m.panel == PanelEvents {
			m.events.ScrollUp(1)
		}
	case key.Matches(msg, m.keys.ScrollDown):
		if m.panel == PanelEvents {
			m.events.ScrollDown(1)
		}
	}
	return nil, false
}

func (m *Model) setPolicy(p geometry.Policy) tea.Cmd {
	if p != m.controls.Policy {
		m.events.Addf(eventlog.KindUI, "display mode %s", p)
	}
	m.controls.Policy = p
	m.surface.Policy = p
	return m.overlay.Show()
}

func (m *Model) togglePanel(p Panel) {
	if m.panel == p {
		m.panel = PanelNone
	} else {
		m.panel = p
	}
}

func (m *Model) enterImmersion() tea.Cmd {
	m.immersive = true
	return m.overlay.Hide()
}

func (m *Model) leaveImmersion() tea.Cmd {
	m.immersive = false
	return m.overlay.Show()
}

// sync copies shared state into the views.
func (m *Model) sync() {
	profile := m.sess.VideoProfile()
	m.surface.Profile = profile

	m.statusBar.State = m.state
	m.statusBar.Profile = profile
	m.statusBar.Viewport = m.surface.Viewport()
	m.statusBar.Policy = m.controls.Policy
	m.statusBar.Rumble = m.meter.Level()
	m.statusBar.Immersive = m.immersive

	m.info.HostURL = m.cfg.Host.URL
	if id, ok := m.sess.(identified); ok {
		m.info.SessionID = id.SessionID()
	}
	m.info.State = m.state
	m.info.Profile = profile
	m.info.Policy = m.controls.Policy
	m.info.Target = m.surface.Target
	m.info.Frame = m.surface.Frame()
	m.info.TVMode = m.controls.TVMode
	m.info.Rumble = m.haptics != nil
}

// View renders the stream screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := m.surface.View()
	if m.overlay.Visible() {
		width := min(controlsWidth, max(m.width-2, 20))
		body = overlayLines(body, m.controls.View(m.overlay.Alpha(), width), m.width, lipgloss.Bottom)
	}
	switch m.panel {
	case PanelInfo:
		body = overlayLines(body, m.info.View(), m.width, lipgloss.Center)
	case PanelEvents:
		body = overlayLines(body, m.events.View(m.width, m.surface.Rows), m.width, lipgloss.Center)
	}
	if d := m.dialogs.View(m.width); d != "" {
		body = overlayLines(body, d, m.width, lipgloss.Center)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		body,
		theme.StyleDimmed.Render(m.help.View(m.keys)),
	)
}

// overlayLines draws fg over whole lines of base, centered horizontally and
// placed vertically at pos.
func overlayLines(base, fg string, width int, pos lipgloss.Position) string {
	baseLines := strings.Split(base, "\n")
	fgLines := strings.Split(fg, "\n")
	if len(fgLines) >= len(baseLines) {
		return fg
	}
	start := int(float64(len(baseLines)-len(fgLines)) * float64(pos))
	for i, line := range fgLines {
		baseLines[start+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(baseLines, "\n")
}
