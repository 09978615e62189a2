// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
	"github.com/aiwithdastgeer/hookchat/internal/model"
	"github.com/aiwithdastgeer/hookchat/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the full screen: sidebar on the left, then header,
// transcript, composer, notice and status bar stacked on the right.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderComposer(),
		m.renderNotice(),
		m.renderStatusBar(),
	)

	sidebar := m.renderSidebar()
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right)
}

// renderHeader shows the active chat's title and the in-flight spinner.
func (m Model) renderHeader() string {
	meta := m.store.ActiveMeta()
	title := meta.Title

	if m.store.InFlight(meta.ID) {
		title += "  " + m.spinner.View()
	}
	return m.theme.Header.Width(m.chatWidth()).Render(title)
}

// renderSidebar lists earlier chats under the active one.
func (m Model) renderSidebar() string {
	inner := m.sidebarWidth - 3
	if inner < 4 {
		inner = 4
	}

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n\n")

	// Entries are padded to a uniform column so styled rows line up.
	active := m.store.ActiveMeta()
	b.WriteString(m.theme.SidebarActive.Render(util.PadRight("* "+util.TruncateWidth(active.Title, inner), inner+2)))
	b.WriteString("\n")

	for _, meta := range m.store.Previous() {
		b.WriteString(m.theme.SidebarItem.Render(util.PadRight("  "+util.TruncateWidth(meta.Title, inner), inner+2)))
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(m.sidebarWidth).
		Height(m.height - 1).
		Render(b.String())
}

// renderComposer shows the input line.
func (m Model) renderComposer() string {
	return m.input.View()
}

// renderNotice shows the transient status line, or a blank row so the
// layout height stays constant.
func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	style := m.theme.NoticeInfo
	if m.noticeErr {
		style = m.theme.NoticeError
	}
	return style.Render(util.TruncateWidth(m.notice, m.chatWidth()))
}

// renderStatusBar shows the keyboard shortcuts.
func (m Model) renderStatusBar() string {
	shortcuts := []struct{ key, desc string }{
		{"enter", "send"},
		{"C-n", "new"},
		{"C-j/C-k", "switch"},
		{"PgUp/PgDn", "scroll"},
		{"C-c", "quit"},
	}

	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts,
			m.theme.ShortcutKey.Render(sc.key)+" "+m.theme.ShortcutDesc.Render(sc.desc))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

// chatWidth is the column width right of the sidebar.
func (m Model) chatWidth() int {
	w := m.width - m.sidebarWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the active session's messages.
func (m Model) renderTranscript() string {
	msgs := m.store.Messages(m.store.ActiveID())
	if len(msgs) == 0 {
		return m.theme.Pending.Render("Start the conversation below.")
	}

	blocks := make([]string, 0, len(msgs))
	for i := range msgs {
		blocks = append(blocks, m.renderMessage(&msgs[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one message with its label, body and attachment.
func (m Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	switch msg.Role {
	case model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render("You"))
	default:
		b.WriteString(m.theme.AssistantLabel.Render("AI"))
	}
	b.WriteString("\n")

	switch {
	case msg.Pending && msg.Text == "":
		b.WriteString(m.theme.Pending.Render(m.spinner.View() + " Thinking..."))
	case msg.Text == dispatch.ErrorText:
		b.WriteString(m.theme.ErrorBody.Render(msg.Text))
	default:
		b.WriteString(m.renderBody(msg))
	}

	if msg.Attachment != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.AttachmentTag.Render(attachmentLine(msg.Attachment)))
	}
	return b.String()
}

// renderBody applies markdown to finished assistant text. Streaming text
// stays plain so partial markup never garbles the view.
func (m Model) renderBody(msg *model.Message) string {
	if msg.Role == model.RoleAssistant && !msg.Pending && m.renderer != nil {
		if out, err := m.renderer.Render(msg.Text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return msg.Text
}

// attachmentLine describes an attachment for display.
func attachmentLine(att *model.Attachment) string {
	name := att.Name
	if name == "" {
		name = att.Ref
	}
	switch att.Kind {
	case model.AttachmentImage:
		return "[image] " + name
	case model.AttachmentAudio:
		return "[audio] " + name
	default:
		return "[file] " + name
	}
}
