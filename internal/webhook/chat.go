// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// ChatRequest is the JSON body for a plain text exchange.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the single-shot JSON reply for non-streamed exchanges.
type ChatResponse struct {
	Output string `json:"output"`
}

// SendMessage posts a plain text message to /Chatbot and returns the
// chunked response body for the stream decoder to consume.
//
// The caller owns the returned body and must close it. No deadline is
// attached beyond ctx: the stream lasts as long as the backend keeps
// writing.
func (c *Client) SendMessage(ctx context.Context, message string) (io.ReadCloser, error) {
	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, PathChatbot, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// Streaming uses a client without timeout; cancellation comes from ctx.
	resp, err := c.do(&http.Client{}, req)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// UploadFile posts a file (with an optional accompanying message) to
// /Chatbot as multipart form data and returns the single JSON reply.
func (c *Client) UploadFile(ctx context.Context, path, message string) (*ChatResponse, error) {
	fields := map[string]string{}
	if message != "" {
		fields["message"] = message
	}

	body, contentType, err := multipartBody(fields, "file", path)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, PathChatbot, contentType, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode upload response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// TOOL OPERATIONS
// =============================================================================

// ToolRequest is the JSON body for the shared tool endpoint.
type ToolRequest struct {
	Prompt string `json:"prompt"`
}

// InvokeTool posts a templated prompt to /web_quiz and returns the
// display text from the JSON reply.
func (c *Client) InvokeTool(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ToolRequest{Prompt: prompt})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, PathWebQuiz, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode tool response", Cause: err}
	}

	return result.Output, nil
}

// =============================================================================
// MULTIPART HELPER
// =============================================================================

// multipartBody builds a multipart form with the given text fields and
// one file part read from disk.
func multipartBody(fields map[string]string, fileField, path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to open " + path, Cause: err}
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to write form field", Cause: err}
		}
	}

	part, err := w.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to create form file", Cause: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to read " + path, Cause: err}
	}

	if err := w.Close(); err != nil {
		return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to finalize form", Cause: err}
	}

	return &buf, w.FormDataContentType(), nil
}
