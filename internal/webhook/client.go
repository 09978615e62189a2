// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package webhook provides the HTTP client for the chat webhook backend.
package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the webhook client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
	ErrTypeEmptyBody
)

// Sentinel errors for easy checking.
var (
	ErrTimeout   = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrEmptyBody = &ClientError{Type: ErrTypeEmptyBody, Message: "response body is empty"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsStatusError checks if an error came from a non-2xx response.
func IsStatusError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeStatus
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Endpoint paths on the chat webhook host.
const (
	PathChatbot       = "/Chatbot"
	PathImage         = "/image"
	PathGenerateImage = "/Generate_image"
	PathGenerateAudio = "/Generate_audio"
	PathWebQuiz       = "/web_quiz"
)

// ClientConfig holds configuration options for the webhook client.
type ClientConfig struct {
	// BaseURL is the chat webhook base URL, e.g.
	// https://ayvzjvz0.rpcld.net/webhook-test
	BaseURL string

	// Timeout for non-streaming requests (default: 60s). Streaming
	// requests deliberately have no deadline; a hung stream leaves its
	// session loading, which is a documented limitation of the source
	// design.
	Timeout time.Duration

	// AuthToken, when set, is sent as a bearer token on every call.
	// The observed backend takes no credentials; this is the
	// configuration point for deployments that do.
	AuthToken string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat webhook backend.
// It is safe for concurrent use; independent sessions may have
// exchanges in flight simultaneously.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// The base URL is retargeted by config hot reload while exchanges
	// are in flight, so it has its own lock.
	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a webhook client for the given base URL.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a webhook client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		config:  config,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured webhook base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL updates the webhook base URL (config hot reload).
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = u
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// newRequest builds a POST request against a webhook path, applying the
// optional bearer token.
func (c *Client) newRequest(ctx context.Context, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}
	return req, nil
}

// do executes a request and normalizes transport and status failures
// into ClientError values.
func (c *Client) do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "webhook unreachable", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp.Body)
		return nil, &ClientError{
			Type:    ErrTypeStatus,
			Message: "webhook returned " + resp.Status,
		}
	}

	return resp, nil
}

// drainAndClose discards any remaining body so the connection can be
// reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
