// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory collection of chat sessions.
package store

import (
	"sync"

	"github.com/aiwithdastgeer/hookchat/internal/model"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Store owns the session collection and the active-session pointer.
// It is the only shared mutable state in the application; every method
// is one atomic transition under the store mutex, so exchanges for
// different sessions can complete concurrently without interleaving
// half-applied updates.
//
// Mutations are always keyed by session id, never by "whatever is
// active": the active session may change while a network call for
// another session is still in flight.
type Store struct {
	mu       sync.Mutex
	sessions []*model.Session
	activeID string

	// inFlight tracks sessions with an open exchange. The original UI
	// relied on a disabled send button; headless callers need the lock
	// to be explicit.
	inFlight map[string]bool
}

// New creates a store seeded with one empty active session, matching
// the dashboard's initial state.
func New() *Store {
	s := &Store{
		inFlight: make(map[string]bool),
	}
	first := model.NewSession()
	s.sessions = []*model.Session{first}
	s.activeID = first.ID
	return s
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// NewChat applies the new-chat policy: if the active session has no
// messages it is reused (cleared) rather than duplicated, so blank
// sessions never pile up; otherwise a fresh session is created and
// activated. Returns the resulting active session id.
func (s *Store) NewChat() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.findLocked(s.activeID)
	if active != nil && active.IsEmpty() {
		active.Clear()
		return active.ID
	}

	fresh := model.NewSession()
	s.sessions = append(s.sessions, fresh)
	s.activeID = fresh.ID
	return fresh.ID
}

// SwitchActive changes the active pointer. Unknown ids are a silent
// no-op; switching never cancels an in-flight exchange elsewhere.
func (s *Store) SwitchActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) != nil {
		s.activeID = id
	}
}

// ActiveID returns the id of the active session.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Count returns the total number of sessions, empty ones included.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// =============================================================================
// READ SNAPSHOTS
// =============================================================================

// Meta is a read-only view of a session for listing.
type Meta struct {
	ID           string
	Title        string
	MessageCount int
}

// ActiveMeta returns the active session's listing view.
func (s *Store) ActiveMeta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.findLocked(s.activeID)
	if active == nil {
		return Meta{}
	}
	return Meta{ID: active.ID, Title: active.Title, MessageCount: active.MessageCount()}
}

// Previous lists sessions for the sidebar: every session with at least
// one message, except the active one. Sessions with zero messages are
// never listed.
func (s *Store) Previous() []Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]Meta, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.ID == s.activeID || sess.IsEmpty() {
			continue
		}
		metas = append(metas, Meta{ID: sess.ID, Title: sess.Title, MessageCount: sess.MessageCount()})
	}
	return metas
}

// Metas lists every session in creation order, including the active and
// empty ones. Used for cycling through chats in order.
func (s *Store) Metas() []Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]Meta, 0, len(s.sessions))
	for _, sess := range s.sessions {
		metas = append(metas, Meta{ID: sess.ID, Title: sess.Title, MessageCount: sess.MessageCount()})
	}
	return metas
}

// Messages returns a copy of a session's message list for rendering.
// The copies are value snapshots; the UI never holds live pointers into
// the store.
func (s *Store) Messages(id string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(id)
	if sess == nil {
		return nil
	}
	out := make([]model.Message, len(sess.Messages))
	for i, msg := range sess.Messages {
		out[i] = *msg
	}
	return out
}

// =============================================================================
// MESSAGE MUTATION
// =============================================================================

// AppendUserMessage appends a user message to the identified session.
// The session's first user message derives its title. Unknown ids are a
// silent no-op.
func (s *Store) AppendUserMessage(id string, msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.findLocked(id); sess != nil {
		sess.AppendUserMessage(msg)
	}
}

// AppendPlaceholder appends an empty assistant message to be filled as
// the exchange proceeds.
func (s *Store) AppendPlaceholder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.findLocked(id); sess != nil {
		sess.AppendPlaceholder()
	}
}

// UpdateAssistantText overwrites the trailing assistant message's text.
// Called once per stream chunk with the full recomputed display value.
// If the trailing message is not an assistant message the update is
// dropped silently; the session has legitimately moved on and must not
// be corrupted by a late write.
func (s *Store) UpdateAssistantText(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(id)
	if sess == nil {
		return
	}
	if last := sess.LastPlaceholder(); last != nil {
		last.SetText(text)
	}
}

// SealAssistant fixes the trailing assistant message with its final
// text and optional attachment. Silent no-op under the same conditions
// as UpdateAssistantText.
func (s *Store) SealAssistant(id, text string, att *model.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findLocked(id)
	if sess == nil {
		return
	}
	if last := sess.LastPlaceholder(); last != nil {
		last.SetText(text)
		last.Attachment = att
		last.Seal()
	}
}

// SealAssistantError resolves the trailing placeholder to a terminal
// error message. A failed exchange leaves the session with exactly the
// messages it had, plus this one replaced bubble.
func (s *Store) SealAssistantError(id, errText string) {
	s.SealAssistant(id, errText, nil)
}

// =============================================================================
// EXCHANGE LOCKING
// =============================================================================

// BeginExchange claims the per-session in-flight slot. Returns false if
// the session is unknown or already has an exchange running; at most
// one exchange per session, while independent sessions proceed freely.
func (s *Store) BeginExchange(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil || s.inFlight[id] {
		return false
	}
	s.inFlight[id] = true
	return true
}

// EndExchange releases the per-session in-flight slot.
func (s *Store) EndExchange(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// InFlight reports whether the session has an open exchange.
func (s *Store) InFlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[id]
}

// findLocked returns the session with the given id, or nil. Caller must
// hold the mutex.
func (s *Store) findLocked(id string) *model.Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}
