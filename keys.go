package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit      key.Binding
	OpenHelp  key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	Reset     key.Binding
	CopyRow   key.Binding
	Export    key.Binding
	JumpDate  key.Binding
	SetWindow key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in at centre"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out at centre"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "pan back in time"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "pan forward in time"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r", "home"),
		key.WithHelp("r", "show the full range"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy hovered day to clipboard"),
	),
	Export: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export visible window as PNG"),
	),
	JumpDate: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "centre the window on a date"),
	),
	SetWindow: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "set the window to a date range"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.OpenHelp,
		k.ZoomIn,
		k.ZoomOut,
		k.PanLeft,
		k.PanRight,
		k.Reset,
		k.JumpDate,
		k.SetWindow,
		k.CopyRow,
		k.Export,
	}
}
