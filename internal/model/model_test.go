// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// TITLE TESTS
// =============================================================================

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty yields default", in: "", want: DefaultTitle},
		{name: "short kept whole", in: "hi", want: "hi"},
		{name: "exactly 25 no marker", in: strings.Repeat("a", 25), want: strings.Repeat("a", 25)},
		{name: "26 gets prefix and marker", in: strings.Repeat("a", 26), want: strings.Repeat("a", 25) + "..."},
		{name: "long message", in: "please summarize this very long document for me", want: "please summarize this ver..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveTitle(tc.in); got != tc.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDeriveTitle_RuneCounting(t *testing.T) {
	// 26 multi-byte runes must truncate at 25 runes, not 25 bytes.
	in := strings.Repeat("é", 26)
	want := strings.Repeat("é", 25) + "..."
	if got := DeriveTitle(in); got != want {
		t.Errorf("DeriveTitle(%q) = %q, want %q", in, got, want)
	}
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSession_TitleDerivedOnce(t *testing.T) {
	s := NewSession()
	if s.Title != DefaultTitle {
		t.Fatalf("new session title = %q, want %q", s.Title, DefaultTitle)
	}

	s.AppendUserMessage(NewUserMessage("hi"))
	if s.Title != "hi" {
		t.Errorf("title after first user message = %q, want %q", s.Title, "hi")
	}

	// A later user message must not re-derive the title.
	s.AppendUserMessage(NewUserMessage("something else entirely"))
	if s.Title != "hi" {
		t.Errorf("title after second user message = %q, want %q", s.Title, "hi")
	}
}

func TestSession_AppendPlaceholder(t *testing.T) {
	s := NewSession()
	s.AppendUserMessage(NewUserMessage("hello"))
	ph := s.AppendPlaceholder()

	if ph.Role != RoleAssistant {
		t.Errorf("placeholder role = %q, want assistant", ph.Role)
	}
	if !ph.Pending {
		t.Error("placeholder should be pending")
	}
	if ph.Text != "" {
		t.Errorf("placeholder text = %q, want empty", ph.Text)
	}
	if s.Last() != ph {
		t.Error("placeholder should be the trailing message")
	}
}

func TestSession_LastPlaceholder(t *testing.T) {
	s := NewSession()
	if s.LastPlaceholder() != nil {
		t.Error("empty session should have no placeholder")
	}

	s.AppendUserMessage(NewUserMessage("hi"))
	if s.LastPlaceholder() != nil {
		t.Error("trailing user message is not a placeholder")
	}

	ph := s.AppendPlaceholder()
	if s.LastPlaceholder() != ph {
		t.Error("trailing assistant message should be returned")
	}
}

func TestSession_Clear(t *testing.T) {
	s := NewSession()
	s.AppendUserMessage(NewUserMessage("hello there, lovely morning isn't it"))
	s.AppendPlaceholder()

	s.Clear()
	if !s.IsEmpty() {
		t.Error("cleared session should be empty")
	}
	if s.Title != DefaultTitle {
		t.Errorf("cleared session title = %q, want %q", s.Title, DefaultTitle)
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := NewSession()
		if seen[s.ID] {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

// =============================================================================
// ATTACHMENT TESTS
// =============================================================================

func TestAttachment_Constructors(t *testing.T) {
	tests := []struct {
		name string
		att  *Attachment
		kind AttachmentKind
	}{
		{name: "file", att: NewFileAttachment("/tmp/report.pdf", "report.pdf"), kind: AttachmentFile},
		{name: "image", att: NewImageAttachment("/tmp/generated.png"), kind: AttachmentImage},
		{name: "audio", att: NewAudioAttachment("/tmp/voice.mp3"), kind: AttachmentAudio},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.att.Kind != tc.kind {
				t.Errorf("Kind = %q, want %q", tc.att.Kind, tc.kind)
			}
			if tc.att.Ref == "" {
				t.Error("Ref should not be empty")
			}
		})
	}
}

func TestMessage_SetTextOverwrites(t *testing.T) {
	msg := NewPlaceholder()
	msg.SetText(`{"out`)
	msg.SetText("Hello!")
	if msg.Text != "Hello!" {
		t.Errorf("Text = %q, want %q (overwrite, not append)", msg.Text, "Hello!")
	}
}
