// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream turns a chunked webhook response body into
// progressively-updated display text.
package stream

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// DECODER MODES
// =============================================================================

// Mode names the decoder's current output path.
type Mode int

const (
	// ModeRaw displays the raw accumulated text. This is the fallback
	// while the accumulator is not (yet) a complete JSON value, and the
	// terminal state for bodies that never become valid JSON.
	ModeRaw Mode = iota

	// ModeStructured displays the extracted "output" field of a fully
	// parsed JSON accumulator.
	ModeStructured
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStructured:
		return "structured"
	default:
		return "raw"
	}
}

// displayField is the JSON field the webhook uses for display text.
const displayField = "output"

// =============================================================================
// DECODER
// =============================================================================

// Decoder accumulates response bytes chunk by chunk and derives the
// current display text after every chunk.
//
// Chunk boundaries carry no meaning: they may split JSON tokens and even
// UTF-8 code points. The decoder therefore reparses the entire
// accumulator after each append, and holds back an incomplete trailing
// code point from raw display so a split character never renders as
// garbage mid-stream.
type Decoder struct {
	acc     []byte
	display string
	mode    Mode
	done    bool
}

// NewDecoder creates an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends one chunk and returns the updated display text.
// The returned value is a full replacement, never a delta; callers
// overwrite the pending message with it on every chunk.
func (d *Decoder) Feed(chunk []byte) string {
	if d.done {
		return d.display
	}
	d.acc = append(d.acc, chunk...)

	// Speculative parse of the whole accumulator. Most chunks leave it
	// mid-value and the parse fails; that is the expected path, not an
	// error.
	var value map[string]any
	if err := json.Unmarshal(d.acc, &value); err == nil {
		if out, ok := value[displayField].(string); ok && out != "" {
			d.mode = ModeStructured
			d.display = out
			return d.display
		}
	}

	d.mode = ModeRaw
	d.display = string(completePrefix(d.acc))
	return d.display
}

// Finish seals the decoder at end-of-stream and returns the final
// display text. Any held-back trailing bytes are flushed as-is; at EOF
// there is nothing more to wait for.
func (d *Decoder) Finish() string {
	if d.done {
		return d.display
	}
	d.done = true
	if d.mode == ModeRaw {
		d.display = string(d.acc)
	}
	return d.display
}

// Mode returns the decoder's current output path.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Display returns the current display text without feeding.
func (d *Decoder) Display() string {
	return d.display
}

// Len returns the number of accumulated bytes.
func (d *Decoder) Len() int {
	return len(d.acc)
}

// Accumulated returns the raw accumulated text.
func (d *Decoder) Accumulated() string {
	return string(d.acc)
}

// =============================================================================
// UTF-8 BOUNDARY HANDLING
// =============================================================================

// completePrefix returns the longest prefix of b that does not end in an
// incomplete UTF-8 sequence. A multi-byte code point split across chunk
// boundaries is held back until its continuation arrives.
func completePrefix(b []byte) []byte {
	// A UTF-8 sequence is at most 4 bytes, so only the tail needs
	// inspection.
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		c := b[i]
		if c < utf8.RuneSelf {
			// ASCII tail byte: everything before it already decoded.
			return b
		}
		if isStartByte(c) {
			if utf8.RuneStart(c) {
				r, size := utf8.DecodeRune(b[i:])
				if r == utf8.RuneError && size <= 1 && len(b)-i < utf8.UTFMax {
					// Incomplete sequence at the tail: hold it back.
					return b[:i]
				}
			}
			return b
		}
		// Continuation byte, keep scanning backward.
	}
	return b
}

// isStartByte reports whether c begins a UTF-8 sequence (i.e. is not a
// continuation byte).
func isStartByte(c byte) bool {
	return c&0xC0 != 0x80
}

// Preview returns a trimmed single-line preview of s for logging.
func Preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
