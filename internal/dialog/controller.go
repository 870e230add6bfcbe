package dialog

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Kind tags the condition a dialog was shown for.
type Kind int

const (
	KindNone Kind = iota
	KindQuit
	KindCreateError
	KindPinRequest
)

func (k Kind) String() string {
	switch k {
	case KindQuit:
		return "quit"
	case KindCreateError:
		return "create_error"
	case KindPinRequest:
		return "pin_request"
	default:
		return "none"
	}
}

// Controller owns the single dialog on screen.
//
// The tracked kind is KindNone or the kind of the visible dialog. Showing a
// kind that is already tracked does nothing, so a state that is emitted
// repeatedly does not rebuild its dialog (and does not lose typed text).
// That includes changes to the dialog's content: a second PIN request that
// says the PIN was wrong keeps the first dialog and its message.
//
// Controller is not safe for concurrent use; it lives in the Bubble Tea
// update loop.
type Controller struct {
	keys    KeyMap
	kind    Kind
	current *Dialog
}

// NewController returns a controller with nothing shown.
func NewController() *Controller {
	return &Controller{keys: DefaultKeyMap()}
}

// Kind returns the tracked kind.
func (c *Controller) Kind() Kind { return c.kind }

// Current returns the shown dialog, or nil.
func (c *Controller) Current() *Dialog { return c.current }

// Present shows the dialog built by build unless a dialog of the same kind
// is already shown. Any other dialog is dismissed first. The returned
// command starts the text field's cursor, if the new dialog has one.
func (c *Controller) Present(kind Kind, build func() *Dialog) tea.Cmd {
	if kind == KindNone {
		c.Clear()
		return nil
	}
	if c.kind == kind {
		return nil
	}
	if c.current != nil {
		c.current.dismiss()
		c.current = nil
	}

	d := build()
	c.current = d
	c.kind = kind
	return d.show()
}

// Clear dismisses the shown dialog, if any, and forgets its kind.
func (c *Controller) Clear() {
	if c.current != nil {
		c.current.dismiss()
	}
	c.current = nil
	c.kind = KindNone
}

// Resolve closes the shown dialog as the user chose. The controller is
// cleared before the chosen action runs, so a state re-emitted by that
// action is treated as a new condition.
func (c *Controller) Resolve(choice Choice) {
	d := c.current
	if d == nil || choice == ChoiceNone {
		return
	}
	input := d.Input()
	c.Clear()

	switch {
	case choice == ChoiceCancel:
		if d.OnCancel != nil {
			d.OnCancel(input)
		}
	case int(choice) < len(d.Buttons):
		if a := d.Buttons[choice].Action; a != nil {
			a(input)
		}
	}
	if d.OnDismiss != nil {
		d.OnDismiss()
	}
}

// Update routes a message to the shown dialog. It reports whether the
// message was consumed.
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	if c.current == nil {
		return false, nil
	}
	choice, cmd := c.current.Update(msg, c.keys)
	c.Resolve(choice)
	return true, cmd
}

// View renders the shown dialog, or "".
func (c *Controller) View(width int) string {
	if c.current == nil {
		return ""
	}
	return c.current.View(width)
}
