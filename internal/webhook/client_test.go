// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendMessage_StreamsBody(t *testing.T) {
	var gotBody ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, PathChatbot, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fl := w.(http.Flusher)
		io.WriteString(w, `{"out`)
		fl.Flush()
		io.WriteString(w, `put":"Hello!"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	body, err := client.SendMessage(context.Background(), "hi")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, `{"output":"Hello!"}`, string(data))
	require.Equal(t, "hi", gotBody.Message)
}

func TestSendMessage_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SendMessage(context.Background(), "hi")
	require.Error(t, err)
	require.True(t, IsStatusError(err))
}

func TestSendMessage_NoAuthHeaderByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		io.WriteString(w, `{"output":"ok"}`)
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL).SendMessage(context.Background(), "hi")
	require.NoError(t, err)
	body.Close()
}

func TestSendMessage_AuthTokenWhenConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		io.WriteString(w, `{"output":"ok"}`)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.AuthToken = "sekrit"

	body, err := NewClientWithConfig(cfg).SendMessage(context.Background(), "hi")
	require.NoError(t, err)
	body.Close()
}

func TestUploadFile_MultipartShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("file contents"), 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "look at this", r.FormValue("message"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "notes.txt", hdr.Filename)

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, "file contents", string(data))

		json.NewEncoder(w).Encode(ChatResponse{Output: "received"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).UploadFile(context.Background(), path, "look at this")
	require.NoError(t, err)
	require.Equal(t, "received", resp.Output)
}

func TestAnalyzeImage_ResultsArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathImage, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "what is this", r.FormValue("text"))

		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		io.WriteString(w, `{"results":[{"text":"a cat"},{"text":"on a mat"}]}`)
	}))
	defer srv.Close()

	analysis, err := NewClient(srv.URL).AnalyzeImage(context.Background(), path, "what is this")
	require.NoError(t, err)
	require.Equal(t, "a cat\non a mat", analysis.DisplayText())
}

func TestAnalyzeImage_MessageFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{1}, 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"could not analyze image"}`)
	}))
	defer srv.Close()

	analysis, err := NewClient(srv.URL).AnalyzeImage(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, "could not analyze image", analysis.DisplayText())
}

func TestGenerateImage_BinaryPayload(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathGenerateImage, r.URL.Path)

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a cat", req.Text)

		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer srv.Close()

	data, contentType, err := NewClient(srv.URL).GenerateImage(context.Background(), "a cat")
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Equal(t, "image/png", contentType)
}

func TestGenerateImage_EmptyBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, _, err := NewClient(srv.URL).GenerateImage(context.Background(), "a cat")
	require.ErrorIs(t, err, ErrEmptyBody)
}

func TestGenerateAudio_JSONReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"hello there","audio_url":"https://cdn.example/a.mp3"}`)
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).GenerateAudio(context.Background(), "hello there")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/a.mp3", result.URL)
	require.Equal(t, "hello there", result.Transcript)
	require.Empty(t, result.Data)
}

func TestGenerateAudio_BinaryReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte{0xFF, 0xFB, 1, 2})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).GenerateAudio(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFB, 1, 2}, result.Data)
	require.Empty(t, result.URL)
}

func TestInvokeTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathWebQuiz, r.URL.Path)

		var req ToolRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Contains(t, req.Prompt, "geography")

		io.WriteString(w, `{"output":"Q1: ..."}`)
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).InvokeTool(context.Background(), "make a quiz about geography")
	require.NoError(t, err)
	require.Equal(t, "Q1: ...", out)
}

func TestSetBaseURL_ConcurrentWithRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"output":"ok"}`)
	}))
	defer srv.Close()

	// Config hot reload retargets the base URL from its own goroutine
	// while exchanges are in flight; both sides must go through the lock.
	client := NewClient(srv.URL)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				client.SetBaseURL(srv.URL)
			}
		}
	}()

	for i := 0; i < 50; i++ {
		out, err := client.InvokeTool(context.Background(), "ping")
		require.NoError(t, err)
		require.Equal(t, "ok", out)
	}
	close(done)
	wg.Wait()

	require.Equal(t, srv.URL, client.BaseURL())
}
