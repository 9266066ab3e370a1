package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync       key.Binding
	keepLocal  key.Binding
	keepServer key.Binding
	info       key.Binding
	quit       key.Binding
}

var keys = keyMap{
	sync:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
	keepLocal:  key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "keep local")),
	keepServer: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "keep server")),
	info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "build info")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
