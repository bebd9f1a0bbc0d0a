package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus   key.Binding
	Clear   key.Binding
	Sidebar key.Binding
	Open    key.Binding
	Paste   key.Binding
	Table   key.Binding
	Inspect key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Sidebar: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "files")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
	Table:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "records")),
	Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
	Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Clear, k.Sidebar, k.Paste, k.Table, k.Inspect, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Clear, k.Inspect},
		{k.Sidebar, k.Open, k.Paste},
		{k.Table, k.Export, k.Help, k.Quit},
	}
}
