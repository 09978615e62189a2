// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the chat screen. Colors use adaptive
// pairs so the layout reads on both light and dark terminals.
type Theme struct {
	// Layout
	Header  lipgloss.Style
	Sidebar lipgloss.Style

	// Sidebar entries
	SidebarTitle  lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style

	// Message rendering
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Pending        lipgloss.Style
	ErrorBody      lipgloss.Style
	AttachmentTag  lipgloss.Style

	// Input area
	InputPrompt lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Notices
	NoticeInfo  lipgloss.Style
	NoticeError lipgloss.Style
}

// NewTheme builds the default theme.
func NewTheme() *Theme {
	accent := lipgloss.AdaptiveColor{Light: "63", Dark: "75"}
	subtle := lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
	danger := lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	good := lipgloss.AdaptiveColor{Light: "28", Dark: "114"}

	return &Theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(subtle).
			Padding(0, 1),

		SidebarTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(subtle),

		SidebarItem: lipgloss.NewStyle().
			Foreground(subtle),

		SidebarActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(good),

		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Pending: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		ErrorBody: lipgloss.NewStyle().
			Foreground(danger),

		AttachmentTag: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		InputPrompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		StatusBar: lipgloss.NewStyle().
			Foreground(subtle),

		ShortcutKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		ShortcutDesc: lipgloss.NewStyle().
			Foreground(subtle),

		NoticeInfo: lipgloss.NewStyle().
			Foreground(good),

		NoticeError: lipgloss.NewStyle().
			Foreground(danger),
	}
}
