package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevPage key.Binding
	NextPage key.Binding
	Pin      key.Binding
	Unpin    key.Binding
	Dirty    key.Binding
	Force    key.Binding
	Flush    key.Binding
	Dump     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	PrevPage: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous page id"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next page id"),
	),
	Pin: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pin page"),
	),
	Unpin: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unpin page"),
	),
	Dirty: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "mark dirty"),
	),
	Force: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "force page to disk"),
	),
	Flush: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "force flush pool"),
	),
	Dump: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "dump snapshot"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
