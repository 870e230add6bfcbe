// Package dialog provides the streaming screen's modal dialog and the
// controller that owns the one dialog allowed on screen at a time.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/remoteplay/tui/internal/theme"
)

const maxPanelWidth = 60

// Action runs when a dialog closes through a button or cancel. input is the
// text field's content at the moment the dialog closed ("" without a field).
type Action func(input string)

// Button is one dialog button. A nil Action makes it inert: pressing it only
// closes the dialog.
type Button struct {
	Label  string
	Action Action
}

// Choice is what the user did to a dialog.
type Choice int

const (
	ChoiceNone   Choice = -2
	ChoiceCancel Choice = -1
	// Values >= 0 are button indexes.
)

// Dialog is a modal message with buttons and an optional text field.
type Dialog struct {
	Title   string
	Message string
	Buttons []Button

	// OnCancel runs when the user backs out with esc.
	OnCancel Action
	// OnDismiss runs after every user-driven close, after the button or
	// cancel action. It does not run when the controller replaces the dialog.
	OnDismiss func()

	input   *textinput.Model
	focus   int
	visible bool
}

// WithInput adds a text field. Masked fields echo bullets.
func (d *Dialog) WithInput(placeholder string, masked bool) *Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 24
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	d.input = &ti
	return d
}

// HasInput reports whether the dialog has a text field.
func (d *Dialog) HasInput() bool { return d.input != nil }

// Input returns the text field's content.
func (d *Dialog) Input() string {
	if d.input == nil {
		return ""
	}
	return d.input.Value()
}

// SetInput replaces the text field's content.
func (d *Dialog) SetInput(s string) {
	if d.input != nil {
		d.input.SetValue(s)
	}
}

// Visible reports whether the dialog is currently shown.
func (d *Dialog) Visible() bool { return d.visible }

// Focus returns the index of the focused button.
func (d *Dialog) Focus() int { return d.focus }

func (d *Dialog) show() tea.Cmd {
	d.visible = true
	d.focus = 0
	if d.input != nil {
		return d.input.Focus()
	}
	return nil
}

func (d *Dialog) dismiss() {
	d.visible = false
	if d.input != nil {
		d.input.Blur()
	}
}

// Update handles a key press. Keys the dialog does not bind go to the text
// field.
func (d *Dialog) Update(msg tea.Msg, keys KeyMap) (Choice, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if d.input != nil {
			ti, cmd := d.input.Update(msg)
			d.input = &ti
			return ChoiceNone, cmd
		}
		return ChoiceNone, nil
	}

	switch {
	case key.Matches(km, keys.Cancel):
		return ChoiceCancel, nil

	case key.Matches(km, keys.Confirm):
		if len(d.Buttons) == 0 {
			return ChoiceCancel, nil
		}
		return Choice(d.focus), nil

	case key.Matches(km, keys.Next):
		if n := len(d.Buttons); n > 0 {
			d.focus = (d.focus + 1) % n
		}
		return ChoiceNone, nil

	case key.Matches(km, keys.Prev):
		if n := len(d.Buttons); n > 0 {
			d.focus = (d.focus - 1 + n) % n
		}
		return ChoiceNone, nil
	}

	if d.input != nil {
		ti, cmd := d.input.Update(km)
		d.input = &ti
		return ChoiceNone, cmd
	}
	return ChoiceNone, nil
}

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorAccent).
			Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)

	styleMessage = lipgloss.NewStyle().
			Foreground(theme.ColorBright)

	styleButton = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(theme.ColorDimmed)

	styleButtonFocused = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(theme.ColorBg).
				Background(theme.ColorAccent)
)

// View renders the dialog panel for a screen of the given width.
func (d *Dialog) View(width int) string {
	inner := maxPanelWidth
	if width-6 < inner {
		inner = width - 6
	}
	if inner < 20 {
		inner = 20
	}

	var sections []string
	if d.Title != "" {
		sections = append(sections, styleTitle.Render(d.Title), "")
	}
	sections = append(sections, styleMessage.Width(inner).Render(d.Message))

	if d.input != nil {
		sections = append(sections, "", d.input.View())
	}

	if len(d.Buttons) > 0 {
		var buttons []string
		for i, b := range d.Buttons {
			style := styleButton
			if i == d.focus {
				style = styleButtonFocused
			}
			buttons = append(buttons, style.Render(strings.ToUpper(b.Label)))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
		sections = append(sections, "", lipgloss.PlaceHorizontal(inner, lipgloss.Right, row))
	}

	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
