// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the client for the account webhook backend and the
// local login marker that gates the chat screen.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ENDPOINT PATHS
// =============================================================================

const (
	PathSignup          = "/signup"
	PathVerifyEmail     = "/verify-email"
	PathLogin           = "/login"
	PathForgotPassword  = "/forgot-password"
	PathVerifyResetCode = "/verify-reset-code"
	PathResetPassword   = "/reset-password"
)

// networkErrorText is shown for any transport-level failure, matching the
// wording users of the web front-end already know.
const networkErrorText = "An unexpected error occurred. Please check your network connection and try again."

// invalidPasswordText is the one message the login endpoint returns with a
// 200 status that still means failure.
const invalidPasswordText = "Invalid password"

const defaultTimeout = 30 * time.Second

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the account endpoints. Every call returns the backend's
// human-readable message; a non-nil error means the operation did not
// succeed and the error text is what should be shown to the user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an account client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// serverMessage is the shape every account endpoint responds with.
type serverMessage struct {
	Message string `json:"message"`
}

// Signup registers a new account. On success the caller should prompt for
// the emailed verification code next.
func (c *Client) Signup(ctx context.Context, username, email, password, confirm string) (string, error) {
	if err := ValidateUsername(username); err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateNewPassword(password); err != nil {
		return "", err
	}
	if err := ValidateConfirm(password, confirm); err != nil {
		return "", err
	}
	payload := map[string]string{"username": username, "email": email, "password": password}
	msg, err := c.post(ctx, PathSignup, payload, "Registration successful!")
	if err != nil {
		return "", fmt.Errorf("Failed to register. %s", err.Error())
	}
	return msg, nil
}

// VerifyEmail submits the code mailed after signup.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateCode(code); err != nil {
		return "", err
	}
	payload := map[string]string{"email": email, "code": code}
	msg, err := c.post(ctx, PathVerifyEmail, payload, "Email verified successfully!")
	if err != nil {
		return "", fmt.Errorf("Verification failed. %s", err.Error())
	}
	return msg, nil
}

// Login checks credentials. The backend reports a wrong password with a 200
// response whose message is "Invalid password", so that message is mapped to
// an error here.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateLoginPassword(password); err != nil {
		return "", err
	}
	payload := map[string]string{"email": email, "password": password}
	msg, err := c.post(ctx, PathLogin, payload, "Login successful!")
	if err != nil {
		return "", err
	}
	if msg == invalidPasswordText {
		return "", fmt.Errorf("%s", msg)
	}
	return msg, nil
}

// ForgotPassword requests a reset code for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	payload := map[string]string{"email": email}
	return c.post(ctx, PathForgotPassword, payload, "Reset code sent!")
}

// VerifyResetCode checks a reset code before the new password is asked for.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateCode(code); err != nil {
		return "", err
	}
	payload := map[string]string{"email": email, "code": code}
	return c.post(ctx, PathVerifyResetCode, payload, "Code verified!")
}

// ResetPassword sets a new password using a verified reset code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword, confirm string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidateCode(code); err != nil {
		return "", err
	}
	if err := ValidateNewPassword(newPassword); err != nil {
		return "", err
	}
	if err := ValidateConfirm(newPassword, confirm); err != nil {
		return "", err
	}
	payload := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return c.post(ctx, PathResetPassword, payload, "Password reset successfully!")
}

// post sends a JSON payload and returns the backend's message. A non-2xx
// status becomes an error carrying the backend's message, or an HTTP status
// line when the body is not parseable.
func (c *Client) post(ctx context.Context, path string, payload map[string]string, fallback string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s", networkErrorText)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s", networkErrorText)
	}

	var sm serverMessage
	parseErr := json.Unmarshal(data, &sm)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parseErr == nil && sm.Message != "" {
			return "", fmt.Errorf("%s", sm.Message)
		}
		return "", fmt.Errorf("HTTP error! Status: %d", resp.StatusCode)
	}

	if parseErr != nil || sm.Message == "" {
		return fallback, nil
	}
	return sm.Message, nil
}
