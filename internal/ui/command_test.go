// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"reflect"
	"testing"

	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want dispatch.Input
	}{
		{
			name: "plain text",
			raw:  "hello there",
			want: dispatch.TextInput{Message: "hello there"},
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  hi  ",
			want: dispatch.TextInput{Message: "hi"},
		},
		{
			name: "file with message",
			raw:  "/file ./notes.pdf summarize this",
			want: dispatch.FileInput{Path: "./notes.pdf", Message: "summarize this"},
		},
		{
			name: "file without message",
			raw:  "/file ./notes.pdf",
			want: dispatch.FileInput{Path: "./notes.pdf"},
		},
		{
			name: "image analysis with prompt",
			raw:  "/image photo.png what is this",
			want: dispatch.ImageAnalyzeInput{Path: "photo.png", Prompt: "what is this"},
		},
		{
			name: "image generation",
			raw:  "/imagine a red fox in snow",
			want: dispatch.ImageGenerateInput{Prompt: "a red fox in snow"},
		},
		{
			name: "voice synthesis",
			raw:  "/voice read this aloud",
			want: dispatch.VoiceInput{Text: "read this aloud"},
		},
		{
			name: "transcription",
			raw:  "/transcribe memo.ogg",
			want: dispatch.VoiceInput{AudioPath: "memo.ogg"},
		},
		{
			name: "quiz tool",
			raw:  "/quiz photosynthesis",
			want: dispatch.ToolInput{Tool: dispatch.ToolQuiz, Prompt: "photosynthesis"},
		},
		{
			name: "web search tool",
			raw:  "/search go generics",
			want: dispatch.ToolInput{Tool: dispatch.ToolWebSearch, Prompt: "go generics"},
		},
		{
			name: "deep search tool",
			raw:  "/deepsearch quantum error correction",
			want: dispatch.ToolInput{Tool: dispatch.ToolDeepSearch, Prompt: "quantum error correction"},
		},
		{
			name: "image generation via tool route",
			raw:  "/genimg a lighthouse at dusk",
			want: dispatch.ToolInput{Tool: dispatch.ToolImageGen, Prompt: "a lighthouse at dusk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.raw)
			if err != nil {
				t.Fatalf("ParseInput(%q) returned error: %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInput(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseInput_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown command", "/frobnicate now"},
		{"file missing path", "/file"},
		{"image missing path", "/image"},
		{"imagine missing prompt", "/imagine"},
		{"voice missing text", "/voice"},
		{"transcribe missing path", "/transcribe"},
		{"quiz missing topic", "/quiz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseInput(tt.raw); err == nil {
				t.Errorf("ParseInput(%q) should fail", tt.raw)
			}
		})
	}
}

func TestSendErrorText(t *testing.T) {
	if got := sendErrorText(dispatch.ErrBusy); got != "A response is still in progress for this chat." {
		t.Errorf("busy text = %q", got)
	}
	if got := sendErrorText(dispatch.ErrEmptyInput); got != "Nothing to send." {
		t.Errorf("empty input text = %q", got)
	}
}
