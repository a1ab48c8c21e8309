package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// menuKeys holds the bindings used outside of a running trial. Trial keys are
// configurable and resolved through keymap.Binding instead.
type menuKeys struct {
	Up       key.Binding
	Down     key.Binding
	Choose   key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	Start    key.Binding
	Back     key.Binding
	Continue key.Binding
	Window   key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "choose"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "confirm"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Continue: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "menu"),
		),
		Window: key.NewBinding(
			key.WithKeys("-", "="),
			key.WithHelp("-/=", "avg window"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQ: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpFor returns the short help bindings shown on a screen's footer.
func (k menuKeys) helpFor(s screen) []key.Binding {
	switch s {
	case screenCategory:
		return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
	case screenItems:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Confirm, k.Back}
	case screenKeys:
		return []key.Binding{k.Start, k.Back}
	case screenSummary:
		return []key.Binding{k.Continue, k.Window, k.ForceQ}
	default:
		return nil
	}
}
