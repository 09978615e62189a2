// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package webhook provides the HTTP client for the chat webhook backend.
//
// The backend is an opaque collaborator exposing a handful of POST
// endpoints that accept JSON or multipart form data and answer with
// JSON, a chunked byte stream, or a binary blob:
//
//	/Chatbot         text chat (streamed) and file upload (JSON)
//	/image           image analysis (JSON)
//	/Generate_image  image generation (binary)
//	/Generate_audio  audio generation (binary or JSON)
//	/web_quiz        shared tool endpoint (JSON)
//
// No credentials are attached by default, matching the observed
// backend. ClientConfig.AuthToken is the opt-in hook for deployments
// that front these endpoints with auth.
package webhook
