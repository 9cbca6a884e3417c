package controller

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the window-level bindings. They are matched only after
// the open popup or the focused widget ignored a key.
type KeyMap struct {
	Quit            key.Binding
	Esc             key.Binding
	Help            key.Binding
	NextFocus       key.Binding
	PrevFocus       key.Binding
	NextTab         key.Binding
	PrevTab         key.Binding
	Tab1            key.Binding
	Tab2            key.Binding
	Tab3            key.Binding
	Tab4            key.Binding
	Tab5            key.Binding
	Context         key.Binding
	Namespaces      key.Binding
	SingleNamespace key.Binding
	APIResources    key.Binding
	YAML            key.Binding
	LogQuery        key.Binding
	ToggleSplit     key.Binding
	Refresh         key.Binding
	ToggleLog       key.Binding
}

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close popup"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]", "ctrl+right"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("[", "ctrl+left"),
			key.WithHelp("[", "previous tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "switch tab")),
		Tab2: key.NewBinding(key.WithKeys("2")),
		Tab3: key.NewBinding(key.WithKeys("3")),
		Tab4: key.NewBinding(key.WithKeys("4")),
		Tab5: key.NewBinding(key.WithKeys("5")),
		Context: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "switch context"),
		),
		Namespaces: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select namespaces"),
		),
		SingleNamespace: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "select one namespace"),
		),
		APIResources: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select API resources"),
		),
		YAML: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "show object YAML"),
		),
		LogQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "log query"),
		),
		ToggleSplit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle split"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "application log"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the status line hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Tab1, k.Quit}
}

// FullHelp returns keybindings for the help popup.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.NextTab, k.PrevTab, k.NextFocus, k.PrevFocus, k.ToggleSplit},
		{k.Context, k.Namespaces, k.SingleNamespace, k.APIResources, k.YAML, k.LogQuery},
		{k.Refresh, k.ToggleLog, k.Help, k.Esc, k.Quit},
	}
}
