package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Step     key.Binding
	RunCraft key.Binding
	RunAll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Step: key.NewBinding(
			key.WithKeys("n", " ", "enter"),
			key.WithHelp("n/space", "next check"),
		),
		RunCraft: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "finish craft"),
		),
		RunAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "run all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.RunAll, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.RunCraft, k.RunAll},
		{k.Help, k.Quit},
	}
}
