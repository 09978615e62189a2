// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "hello", max: 10, want: "hello"},
		{name: "exactly max", in: "hello", max: 5, want: "hello"},
		{name: "longer than max", in: "hello world", max: 5, want: "hello..."},
		{name: "empty string", in: "", max: 5, want: ""},
		{name: "zero max", in: "hello", max: 0, want: ""},
		{name: "multibyte kept whole", in: "héllo wörld", max: 6, want: "héllo ..."},
		{name: "cjk", in: "こんにちは世界", max: 5, want: "こんにちは..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("hello world", 5); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := TruncateRunesNoEllipsis("hi", 5); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "fits", in: "abc", max: 10, want: "abc"},
		{name: "ascii truncated", in: "abcdefghij", max: 6, want: "abc..."},
		{name: "zero width", in: "abc", max: 0, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateWidth(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestStringWidth_CJKDoubleWidth(t *testing.T) {
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", got)
	}
	if got := StringWidth("ab"); got != 2 {
		t.Errorf("StringWidth(ab) = %d, want 2", got)
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("héllo"); got != 5 {
		t.Errorf("RuneLen(héllo) = %d, want 5", got)
	}
}
