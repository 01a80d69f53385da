package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Grow     key.Binding
	Shrink   key.Binding
	StepDown key.Binding
	StepUp   key.Binding
	Coverage key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow radius"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shrink radius"),
		),
		StepDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "halve step"),
		),
		StepUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "double step"),
		),
		Coverage: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "coverage search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grow, k.Shrink, k.Coverage, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grow, k.Shrink},
		{k.StepDown, k.StepUp},
		{k.Coverage, k.Help, k.Quit},
	}
}
