// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"io"
)

// ErrEmptyBody is returned when a streamed response carries no bytes at
// all. A missing body is fatal for the exchange, not a silent empty
// response.
var ErrEmptyBody = errors.New("response body is empty")

// readBufferSize is the per-read chunk size for pumping a body through
// the decoder.
const readBufferSize = 4096

// UpdateFunc receives the current display text after each chunk.
// Updates are idempotent overwrites applied strictly in arrival order.
type UpdateFunc func(display string)

// DecodeBody pumps an HTTP response body through a Decoder, invoking
// onUpdate after every chunk. Blocks until end-of-stream or context
// cancellation and returns the final display text.
//
// The final value is whatever the decoder last computed; there is no
// separate commit step beyond the last update.
func DecodeBody(ctx context.Context, body io.Reader, onUpdate UpdateFunc) (string, error) {
	dec := NewDecoder()
	buf := make([]byte, readBufferSize)

	for {
		select {
		case <-ctx.Done():
			return dec.Finish(), ctx.Err()
		default:
		}

		n, err := body.Read(buf)
		if n > 0 {
			display := dec.Feed(buf[:n])
			if onUpdate != nil {
				onUpdate(display)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return dec.Finish(), err
		}
	}

	if dec.Len() == 0 {
		return "", ErrEmptyBody
	}

	final := dec.Finish()
	if onUpdate != nil {
		onUpdate(final)
	}
	return final, nil
}
