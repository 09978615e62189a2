// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"exact minimum", "abc", nil},
		{"longer", "dastgeer", nil},
		{"too short", "ab", ErrUsernameTooShort},
		{"empty", "", ErrUsernameTooShort},
		{"multibyte runes count as one", "héé", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUsername(tt.username); err != tt.wantErr {
				t.Errorf("ValidateUsername(%q) = %v, want %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"plain address", "user@example.com", nil},
		{"subdomain", "user@mail.example.co", nil},
		{"plus tag", "user+tag@example.com", nil},
		{"missing at", "userexample.com", ErrInvalidEmail},
		{"missing local part", "@example.com", ErrInvalidEmail},
		{"missing domain", "user@", ErrInvalidEmail},
		{"no dot in domain", "user@example", ErrInvalidEmail},
		{"trailing dot", "user@example.", ErrInvalidEmail},
		{"dot right after at", "user@.com", ErrInvalidEmail},
		{"double at", "user@foo@example.com", ErrInvalidEmail},
		{"embedded space", "us er@example.com", ErrInvalidEmail},
		{"empty", "", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEmail(tt.email); err != tt.wantErr {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePasswords(t *testing.T) {
	if err := ValidateNewPassword("12345"); err != ErrPasswordTooShort {
		t.Errorf("five characters should be rejected, got %v", err)
	}
	if err := ValidateNewPassword("123456"); err != nil {
		t.Errorf("six characters should pass, got %v", err)
	}
	if err := ValidateLoginPassword(""); err != ErrPasswordRequired {
		t.Errorf("empty login password should be rejected, got %v", err)
	}
	if err := ValidateLoginPassword("x"); err != nil {
		t.Errorf("login only requires presence, got %v", err)
	}
	if err := ValidateConfirm("secret1", "secret2"); err != ErrPasswordMismatch {
		t.Errorf("mismatched confirmation should be rejected, got %v", err)
	}
	if err := ValidateConfirm("secret1", "secret1"); err != nil {
		t.Errorf("matching confirmation should pass, got %v", err)
	}
}

func TestValidateCode(t *testing.T) {
	if err := ValidateCode("   "); err != ErrCodeRequired {
		t.Errorf("blank code should be rejected, got %v", err)
	}
	if err := ValidateCode("482913"); err != nil {
		t.Errorf("code should pass, got %v", err)
	}
}
