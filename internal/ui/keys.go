// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap defines the keyboard bindings for the chat screen.
type KeyMap struct {
	Submit   key.Binding
	NewChat  key.Binding
	NextChat key.Binding
	PrevChat key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		NextChat: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("C-j", "next chat"),
		),
		PrevChat: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "prev chat"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
