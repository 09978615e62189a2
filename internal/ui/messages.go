// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// SessionChangedMsg signals that a session's messages changed and the
// transcript should re-render. Sent from the dispatcher's change callback
// via Program.Send, so it can arrive from any goroutine.
type SessionChangedMsg struct {
	SessionID string
}

// NoticeMsg carries a transient status line, such as an upload result or a
// failure that has no place in the transcript.
type NoticeMsg struct {
	Text  string
	IsErr bool
}

// noticeExpireMsg clears a notice after its display time. The ID guards
// against an old timer clearing a newer notice.
type noticeExpireMsg struct {
	id int
}

// sendFinishedMsg reports the outcome of a dispatched exchange. A nil error
// means the transcript already holds the result.
type sendFinishedMsg struct {
	err error
}
