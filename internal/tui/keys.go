package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up              key.Binding
	Down            key.Binding
	Top             key.Binding
	Bottom          key.Binding
	TabWatchlist    key.Binding
	TabNews         key.Binding
	TabInbox        key.Binding
	NextWatchlist   key.Binding
	PrevWatchlist   key.Binding
	AddSymbol       key.Binding
	RemoveItem      key.Binding
	MoveItemDown    key.Binding
	MoveItemUp      key.Binding
	NewWatchlist    key.Binding
	Rename          key.Binding
	CycleColor      key.Binding
	DeleteWatchlist key.Binding
	Yank            key.Binding
	Bookmark        key.Binding
	MarkRead        key.Binding
	MarkAllRead     key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	ResultUp        key.Binding
	ResultDown      key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		TabWatchlist: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "watchlist"),
		),
		TabNews: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "news"),
		),
		TabInbox: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "inbox"),
		),
		NextWatchlist: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next watchlist"),
		),
		PrevWatchlist: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous watchlist"),
		),
		AddSymbol: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add symbol"),
		),
		RemoveItem: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove symbol"),
		),
		MoveItemDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down"),
		),
		MoveItemUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up"),
		),
		NewWatchlist: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new watchlist"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename watchlist"),
		),
		CycleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle color"),
		),
		DeleteWatchlist: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete watchlist"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank symbol"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "mark all read"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ResultUp: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("up", "previous result"),
		),
		ResultDown: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("down", "next result"),
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
