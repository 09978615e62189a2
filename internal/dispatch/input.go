// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch translates user input into webhook exchanges.
package dispatch

import "strings"

// =============================================================================
// INPUT UNION
// =============================================================================

// Input is one user-initiated action. Exactly one concrete type per
// action; the dispatcher selects the endpoint and response strategy
// from the type alone.
type Input interface {
	inputKind() string
}

// TextInput is a plain chat message, answered by a streamed body.
type TextInput struct {
	Message string
}

// FileInput is a file upload with an optional accompanying message.
// The reply is a single JSON value surfaced as a transient
// notification, not an inline chat bubble.
type FileInput struct {
	Path    string
	Message string
}

// ImageAnalyzeInput sends an image for analysis with an optional prompt.
type ImageAnalyzeInput struct {
	Path   string
	Prompt string
}

// ImageGenerateInput asks the backend to render an image from a prompt.
type ImageGenerateInput struct {
	Prompt string
}

// VoiceInput carries either text to synthesize or a recorded audio file.
type VoiceInput struct {
	Text      string
	AudioPath string
}

// ToolInput wraps free text with a fixed instruction template before
// sending it to the shared tool endpoint.
type ToolInput struct {
	Tool   ToolKind
	Prompt string
}

func (TextInput) inputKind() string          { return "text" }
func (FileInput) inputKind() string          { return "file" }
func (ImageAnalyzeInput) inputKind() string  { return "image_analyze" }
func (ImageGenerateInput) inputKind() string { return "image_generate" }
func (VoiceInput) inputKind() string         { return "voice" }
func (ToolInput) inputKind() string          { return "tool" }

// =============================================================================
// TOOL KINDS
// =============================================================================

// ToolKind names the instruction template applied to a tool invocation.
type ToolKind string

const (
	ToolQuiz       ToolKind = "quiz"
	ToolWebSearch  ToolKind = "web_search"
	ToolDeepSearch ToolKind = "deep_search"

	// ToolImageGen routes through the binary image-generation endpoint
	// instead of the shared JSON tool endpoint.
	ToolImageGen ToolKind = "image_gen"
)

// templates are the fixed instruction wrappers for the shared tool
// endpoint.
var templates = map[ToolKind]string{
	ToolQuiz:       "Create a quiz about the following topic: ",
	ToolWebSearch:  "Search the web and answer the following: ",
	ToolDeepSearch: "Do a deep, thorough research pass and answer the following: ",
}

// TemplatePrompt wraps the user's free text with the tool's instruction
// template. Unknown kinds pass the text through unchanged.
func TemplatePrompt(kind ToolKind, text string) string {
	prefix, ok := templates[kind]
	if !ok {
		return text
	}
	return prefix + strings.TrimSpace(text)
}
