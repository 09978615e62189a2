// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunkReader delivers its chunks one per Read call, then EOF. It lets
// tests pin exact chunk boundaries regardless of buffer sizes.
type chunkReader struct {
	chunks [][]byte
	pos    int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.chunks) {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}

func TestDecodeBody_UpdatesPerChunk(t *testing.T) {
	body := &chunkReader{chunks: [][]byte{
		[]byte(`{"out`),
		[]byte(`put":"Hello!"}`),
	}}

	var updates []string
	final, err := DecodeBody(context.Background(), body, func(display string) {
		updates = append(updates, display)
	})

	require.NoError(t, err)
	require.Equal(t, "Hello!", final)
	require.GreaterOrEqual(t, len(updates), 2)
	require.Equal(t, `{"out`, updates[0])
	require.Equal(t, "Hello!", updates[1])
}

func TestDecodeBody_EmptyBodyIsFatal(t *testing.T) {
	body := &chunkReader{}
	_, err := DecodeBody(context.Background(), body, nil)
	require.ErrorIs(t, err, ErrEmptyBody)
}

func TestDecodeBody_RawFallbackFinal(t *testing.T) {
	body := &chunkReader{chunks: [][]byte{
		[]byte("not "),
		[]byte("json"),
	}}

	final, err := DecodeBody(context.Background(), body, nil)
	require.NoError(t, err)
	require.Equal(t, "not json", final)
}

func TestDecodeBody_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := &chunkReader{chunks: [][]byte{[]byte("data")}}
	_, err := DecodeBody(ctx, body, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeBody_ReadErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	body := io.MultiReader(&chunkReader{chunks: [][]byte{[]byte("par")}}, &errReader{err: boom})

	_, err := DecodeBody(context.Background(), body, nil)
	require.ErrorIs(t, err, boom)
}

type errReader struct{ err error }

func (r *errReader) Read(p []byte) (int, error) { return 0, r.err }
