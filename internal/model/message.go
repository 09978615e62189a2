// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// AttachmentKind discriminates the media carried by an attachment.
type AttachmentKind string

const (
	AttachmentFile  AttachmentKind = "file"
	AttachmentImage AttachmentKind = "image"
	AttachmentAudio AttachmentKind = "audio"
)

// Attachment is a single piece of media carried by a message. A message
// carries at most one attachment; the Kind field discriminates, so a
// file/image/audio combination cannot be represented.
type Attachment struct {
	Kind AttachmentKind `json:"kind"`

	// Ref is where the media lives: a local path for uploads, a file
	// or data reference for generated output.
	Ref string `json:"ref"`

	// Name is the display name (usually the base filename).
	Name string `json:"name,omitempty"`
}

// NewFileAttachment creates a generic file attachment.
func NewFileAttachment(ref, name string) *Attachment {
	return &Attachment{Kind: AttachmentFile, Ref: ref, Name: name}
}

// NewImageAttachment creates an image attachment.
func NewImageAttachment(ref string) *Attachment {
	return &Attachment{Kind: AttachmentImage, Ref: ref}
}

// NewAudioAttachment creates an audio attachment.
func NewAudioAttachment(ref string) *Attachment {
	return &Attachment{Kind: AttachmentAudio, Ref: ref}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat session.
//
// Lifecycle: user messages are complete at creation. Assistant messages
// start as empty placeholders (Pending) and are overwritten in place as
// streamed content arrives, then sealed when the exchange completes or
// fails.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Text may be empty while a response is pending.
	Text string `json:"text"`

	// Attachment is optional media; nil for plain text messages.
	Attachment *Attachment `json:"attachment,omitempty"`

	// Pending marks an assistant placeholder that has not been sealed.
	Pending bool `json:"-"`
}

// NewUserMessage creates a complete user message.
func NewUserMessage(text string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessageWithAttachment creates a user message carrying media.
func NewUserMessageWithAttachment(text string, att *Attachment) *Message {
	msg := NewUserMessage(text)
	msg.Attachment = att
	return msg
}

// NewPlaceholder creates an empty assistant message awaiting a response.
func NewPlaceholder() *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

// SetText overwrites the display text of a pending placeholder.
// Repeated calls replace, never append; the stream decoder recomputes
// the full display value on every chunk.
func (m *Message) SetText(text string) {
	m.Text = text
}

// Seal fixes the message content; no further updates follow.
func (m *Message) Seal() {
	m.Pending = false
}

// IsEmpty returns true if the message has no text and no attachment.
func (m *Message) IsEmpty() bool {
	return m.Text == "" && m.Attachment == nil
}

// generateMessageID creates a unique message ID.
func generateMessageID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
