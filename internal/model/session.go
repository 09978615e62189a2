// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session holds one conversation thread: a title and an append-only
// message list. The only in-place mutation is overwriting the trailing
// assistant placeholder while its exchange is streaming.
type Session struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`
}

// NewSession creates an empty session with the default title.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        generateSessionID(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the session.
func (s *Session) Append(msg *Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
}

// AppendUserMessage adds a user message. The first user message in a
// previously empty session derives the title, exactly once; the title is
// never recomputed afterward.
func (s *Session) AppendUserMessage(msg *Message) {
	first := !s.HasUserMessage()
	s.Append(msg)
	if first {
		s.Title = DeriveTitle(msg.Text)
	}
}

// AppendPlaceholder adds an empty assistant message to be filled as the
// response arrives. Returns the placeholder.
func (s *Session) AppendPlaceholder() *Message {
	msg := NewPlaceholder()
	s.Append(msg)
	return msg
}

// Last returns the most recent message, or nil if the session is empty.
func (s *Session) Last() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// LastPlaceholder returns the trailing message if it is an assistant
// placeholder still awaiting its response, else nil. The caller treats
// nil as a silent no-op: the session may have moved on since the
// exchange started, and a late update must never touch anything else.
func (s *Session) LastPlaceholder() *Message {
	last := s.Last()
	if last == nil || last.Role != RoleAssistant {
		return nil
	}
	return last
}

// HasUserMessage reports whether any user message exists.
func (s *Session) HasUserMessage() bool {
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			return true
		}
	}
	return false
}

// IsEmpty returns true if there are no messages.
func (s *Session) IsEmpty() bool {
	return len(s.Messages) == 0
}

// MessageCount returns the number of messages.
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// Clear removes all messages and restores the default title. Used by the
// new-chat policy when the active session is still empty of meaning.
func (s *Session) Clear() {
	s.Messages = make([]*Message, 0)
	s.Title = DefaultTitle
	s.UpdatedAt = time.Now()
}

// generateSessionID creates a unique session ID. Uniqueness is the only
// invariant; the uuid also sorts nowhere in particular, so creation
// order lives in CreatedAt.
func generateSessionID() string {
	return "chat_" + uuid.New().String()
}
