// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/aiwithdastgeer/hookchat/internal/util"

// DefaultTitle is the placeholder title for a session with no user
// messages yet.
const DefaultTitle = "New Chat"

// TitleMaxRunes is the number of leading characters of the first user
// message kept as the session title.
const TitleMaxRunes = 25

// DeriveTitle computes a session title from the first user message.
// Messages longer than TitleMaxRunes yield a 25-rune prefix plus "...";
// shorter messages are used whole. Empty input keeps the default title.
func DeriveTitle(text string) string {
	if text == "" {
		return DefaultTitle
	}
	return util.TruncateRunes(text, TitleMaxRunes)
}
