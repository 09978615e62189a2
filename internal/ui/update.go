// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
)

// Heights of the fixed rows around the transcript viewport: header, input,
// notice, status bar.
const chromeHeight = 4

// noticeDuration is how long a transient notice stays on screen.
const noticeDuration = 5 * time.Second

// Update handles all Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionChangedMsg:
		if msg.SessionID == m.store.ActiveID() {
			m.refreshTranscript(true)
		}
		return m, nil

	case NoticeMsg:
		m.notice = msg.Text
		m.noticeErr = msg.IsErr
		m.noticeID++
		return m, m.expireNotice(m.noticeID)

	case noticeExpireMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case sendFinishedMsg:
		if msg.err != nil {
			m.notice = sendErrorText(msg.err)
			m.noticeErr = true
			m.noticeID++
			return m, m.expireNotice(m.noticeID)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleResize lays out the sidebar, transcript and composer.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	chatWidth := m.width - m.sidebarWidth - 1
	if chatWidth < 20 {
		chatWidth = 20
	}
	viewportHeight := m.height - chromeHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = viewportHeight
	}
	m.input.Width = chatWidth - 4

	m.rebuildRenderer(chatWidth - 2)
	m.refreshTranscript(false)
	return m
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NewChat):
		m.store.NewChat()
		m.input.Reset()
		m.refreshTranscript(false)
		return m, nil

	case key.Matches(msg, m.keys.NextChat):
		m.cycleChat(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevChat):
		m.cycleChat(-1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	return m.updateComponents(msg)
}

// submit parses the composer line and dispatches it against the session
// that is active right now. The session is captured before the command
// runs so a chat switch mid-exchange cannot redirect the reply.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m, nil
	}

	in, err := ParseInput(raw)
	if err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		m.noticeID++
		return m, m.expireNotice(m.noticeID)
	}

	sessionID := m.store.ActiveID()
	m.input.Reset()
	return m, m.dispatchCmd(sessionID, in)
}

// dispatchCmd runs one exchange off the UI goroutine. Transcript updates
// arrive separately through SessionChangedMsg.
func (m Model) dispatchCmd(sessionID string, in dispatch.Input) tea.Cmd {
	disp := m.disp
	return func() tea.Msg {
		return sendFinishedMsg{err: disp.Send(context.Background(), sessionID, in)}
	}
}

// cycleChat switches to the next or previous session in creation order.
func (m *Model) cycleChat(step int) {
	metas := m.store.Metas()
	if len(metas) < 2 {
		return
	}
	active := m.store.ActiveID()
	for i, meta := range metas {
		if meta.ID == active {
			next := (i + step + len(metas)) % len(metas)
			m.store.SwitchActive(metas[next].ID)
			break
		}
	}
	m.refreshTranscript(false)
}

// refreshTranscript re-renders the active session into the viewport.
func (m *Model) refreshTranscript(follow bool) {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if follow && atBottom || !follow {
		m.viewport.GotoBottom()
	}
}

// updateComponents forwards a message to the focused components.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// expireNotice schedules the notice to clear.
func (m Model) expireNotice(id int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpireMsg{id: id}
	})
}

// sendErrorText maps dispatch errors to composer-level notices.
func sendErrorText(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrBusy):
		return "A response is still in progress for this chat."
	case errors.Is(err, dispatch.ErrEmptyInput):
		return "Nothing to send."
	default:
		return err.Error()
	}
}
