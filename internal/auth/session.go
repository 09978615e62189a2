// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// LOGIN MARKER
// =============================================================================

// The login marker is a small file holding the unix time the login expires.
// It stands in for the browser session cookie: present and unexpired means
// the chat screen opens directly, otherwise the login flow runs first.

const (
	markerName = "session"

	// Logins last two days, after which the user is asked again.
	markerTTL = 48 * time.Hour
)

// markerPath returns the marker location inside the state directory.
func markerPath(dir string) string {
	return filepath.Join(dir, markerName)
}

// SaveMarker records a successful login under dir.
func SaveMarker(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	expires := time.Now().Add(markerTTL).Unix()
	data := strconv.FormatInt(expires, 10) + "\n"
	return os.WriteFile(markerPath(dir), []byte(data), 0o600)
}

// ClearMarker logs out by removing the marker. A missing marker is not an
// error.
func ClearMarker(dir string) error {
	err := os.Remove(markerPath(dir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsLoggedIn reports whether a valid, unexpired marker exists. Unreadable or
// malformed markers count as logged out.
func IsLoggedIn(dir string) bool {
	data, err := os.ReadFile(markerPath(dir))
	if err != nil {
		return false
	}
	expires, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return false
	}
	return time.Now().Unix() < expires
}
