// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// Validation errors mirror the messages the backend's forms show, so the
// terminal prompts and the web app reject input the same way.
var (
	ErrUsernameTooShort = errors.New("Username must be at least 3 characters long")
	ErrInvalidEmail     = errors.New("Invalid email address")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters long")
	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordMismatch = errors.New("Passwords don't match")
	ErrCodeRequired     = errors.New("Verification code is required")
)

const (
	minUsernameRunes = 3
	minPasswordRunes = 6
)

// ValidateUsername checks the signup username requirement.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < minUsernameRunes {
		return ErrUsernameTooShort
	}
	return nil
}

// ValidateEmail performs a shape check, not a deliverability check. The
// backend is the authority; this only catches obvious typos before a round
// trip.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") || strings.ContainsAny(email, " \t\n") {
		return ErrInvalidEmail
	}
	dot := strings.LastIndex(domain, ".")
	if dot < 1 || dot == len(domain)-1 {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateNewPassword checks the minimum length used for signup and reset.
func ValidateNewPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateLoginPassword only requires presence. Login defers strength to the
// stored credential.
func ValidateLoginPassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateConfirm checks that a password and its confirmation match.
func ValidateConfirm(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateCode checks that a verification or reset code is present.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeRequired
	}
	return nil
}
