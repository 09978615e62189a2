// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
)

// =============================================================================
// INPUT PARSING
// =============================================================================

// Slash commands map composer input onto the backend's upload and tool
// routes. Anything that does not start with "/" is a plain chat message.
//
//	/file <path> [message]      upload a document, optional accompanying text
//	/image <path> [prompt]      analyze an image
//	/imagine <prompt>           generate an image
//	/voice <text>               synthesize speech for the text
//	/transcribe <path>          transcribe an audio file
//	/quiz <topic>               build a quiz on the topic
//	/search <query>             web search
//	/deepsearch <query>         deeper web research
//	/genimg <prompt>            image generation via the tool route

// ParseInput converts one line of composer input into a dispatchable input.
// It returns an error for unknown or incomplete commands; validation beyond
// shape (empty message, missing file) is left to the dispatcher.
func ParseInput(raw string) (dispatch.Input, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/") {
		return dispatch.TextInput{Message: trimmed}, nil
	}

	cmd, rest := splitCommand(trimmed)
	switch cmd {
	case "/file":
		path, msg := splitArg(rest)
		if path == "" {
			return nil, fmt.Errorf("usage: /file <path> [message]")
		}
		return dispatch.FileInput{Path: path, Message: msg}, nil

	case "/image":
		path, prompt := splitArg(rest)
		if path == "" {
			return nil, fmt.Errorf("usage: /image <path> [prompt]")
		}
		return dispatch.ImageAnalyzeInput{Path: path, Prompt: prompt}, nil

	case "/imagine":
		if rest == "" {
			return nil, fmt.Errorf("usage: /imagine <prompt>")
		}
		return dispatch.ImageGenerateInput{Prompt: rest}, nil

	case "/voice":
		if rest == "" {
			return nil, fmt.Errorf("usage: /voice <text>")
		}
		return dispatch.VoiceInput{Text: rest}, nil

	case "/transcribe":
		if rest == "" {
			return nil, fmt.Errorf("usage: /transcribe <path>")
		}
		return dispatch.VoiceInput{AudioPath: rest}, nil

	case "/quiz":
		if rest == "" {
			return nil, fmt.Errorf("usage: /quiz <topic>")
		}
		return dispatch.ToolInput{Tool: dispatch.ToolQuiz, Prompt: rest}, nil

	case "/search":
		if rest == "" {
			return nil, fmt.Errorf("usage: /search <query>")
		}
		return dispatch.ToolInput{Tool: dispatch.ToolWebSearch, Prompt: rest}, nil

	case "/deepsearch":
		if rest == "" {
			return nil, fmt.Errorf("usage: /deepsearch <query>")
		}
		return dispatch.ToolInput{Tool: dispatch.ToolDeepSearch, Prompt: rest}, nil

	case "/genimg":
		if rest == "" {
			return nil, fmt.Errorf("usage: /genimg <prompt>")
		}
		return dispatch.ToolInput{Tool: dispatch.ToolImageGen, Prompt: rest}, nil

	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

// splitCommand separates the leading /command from its arguments.
func splitCommand(s string) (cmd, rest string) {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// splitArg separates one argument (a path) from the trailing free text.
func splitArg(s string) (arg, rest string) {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
