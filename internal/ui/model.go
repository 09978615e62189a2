// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea chat screen. The model reads session
// state from the store, renders it, and hands every user action to the
// dispatcher; it never mutates sessions itself.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
	"github.com/aiwithdastgeer/hookchat/internal/store"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options control presentation, sourced from the config file.
type Options struct {
	// Markdown renders assistant messages through glamour when true.
	Markdown bool

	// SidebarWidth is the column width of the previous-chats list.
	SidebarWidth int
}

const defaultSidebarWidth = 24

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	// Collaborators
	store *store.Store
	disp  *dispatch.Dispatcher

	// Presentation
	theme    *Theme
	keys     KeyMap
	markdown bool
	renderer *glamour.TermRenderer

	// Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Dimensions
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Transient notice line
	notice    string
	noticeErr bool
	noticeID  int
}

// New creates the chat screen model.
func New(st *store.Store, disp *dispatch.Dispatcher, opts Options) Model {
	theme := NewTheme()

	input := textinput.New()
	input.Placeholder = "Message, or /file /image /imagine /voice /quiz /search ..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	sidebarWidth := opts.SidebarWidth
	if sidebarWidth <= 0 {
		sidebarWidth = defaultSidebarWidth
	}

	return Model{
		store:        st,
		disp:         disp,
		theme:        theme,
		keys:         DefaultKeyMap(),
		markdown:     opts.Markdown,
		input:        input,
		spinner:      sp,
		sidebarWidth: sidebarWidth,
	}
}

// Init starts the cursor blink and spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// rebuildRenderer sizes the markdown renderer to the transcript width. A
// renderer failure turns markdown off rather than breaking the view.
func (m *Model) rebuildRenderer(wrap int) {
	if !m.markdown {
		return
	}
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}
