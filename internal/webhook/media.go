// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// =============================================================================
// IMAGE ANALYSIS
// =============================================================================

// ImageResult is one entry in the analysis result array.
type ImageResult struct {
	Text string `json:"text"`
}

// ImageAnalysis is the JSON reply from /image. The backend answers
// either with a results array or, when it has nothing structured to
// say, with a bare message field.
type ImageAnalysis struct {
	Results []ImageResult `json:"results"`
	Message string        `json:"message"`
}

// DisplayText flattens the analysis into a single display string,
// preferring the results array over the fallback message.
func (a *ImageAnalysis) DisplayText() string {
	if len(a.Results) > 0 {
		parts := make([]string, 0, len(a.Results))
		for _, r := range a.Results {
			if r.Text != "" {
				parts = append(parts, r.Text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}
	return a.Message
}

// AnalyzeImage posts an image (with an optional prompt) to /image as
// multipart form data and returns the parsed analysis.
func (c *Client) AnalyzeImage(ctx context.Context, path, text string) (*ImageAnalysis, error) {
	fields := map[string]string{}
	if text != "" {
		fields["text"] = text
	}

	body, contentType, err := multipartBody(fields, "image", path)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, PathImage, contentType, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ImageAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode image analysis", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// GENERATION (BINARY RESPONSES)
// =============================================================================

// GenerateRequest is the JSON body for the generation endpoints.
type GenerateRequest struct {
	Text string `json:"text"`
}

// GenerateImage posts a prompt to /Generate_image and returns the raw
// image bytes plus the response content type.
func (c *Client) GenerateImage(ctx context.Context, text string) ([]byte, string, error) {
	return c.generateBinary(ctx, PathGenerateImage, text)
}

// AudioResponse is the JSON form of a /Generate_audio reply. The
// endpoint may instead answer with raw audio bytes; see GenerateAudio.
type AudioResponse struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url"`
}

// AudioResult is the normalized outcome of an audio generation call:
// either raw bytes or a remote URL, with an optional transcript.
type AudioResult struct {
	Data       []byte
	URL        string
	Transcript string
}

// GenerateAudio posts text to /Generate_audio. The backend answers
// with either a binary audio payload or JSON {text, audio_url}; the
// content type of the response discriminates.
func (c *Client) GenerateAudio(ctx context.Context, text string) (*AudioResult, error) {
	body, err := json.Marshal(GenerateRequest{Text: text})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, PathGenerateAudio, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var parsed AudioResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode audio response", Cause: err}
		}
		return &AudioResult{URL: parsed.AudioURL, Transcript: parsed.Text}, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read audio payload", Cause: err}
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	return &AudioResult{Data: data}, nil
}

// TranscribeAudio posts a recorded audio file to /Generate_audio as
// multipart form data and returns the normalized result.
func (c *Client) TranscribeAudio(ctx context.Context, path string) (*AudioResult, error) {
	body, contentType, err := multipartBody(nil, "audio", path)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, PathGenerateAudio, contentType, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var parsed AudioResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode audio response", Cause: err}
		}
		return &AudioResult{URL: parsed.AudioURL, Transcript: parsed.Text}, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read audio payload", Cause: err}
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	return &AudioResult{Data: data}, nil
}

// generateBinary posts a JSON {text} body and returns the raw response
// bytes. Used for endpoints whose reply is a blob, not JSON.
func (c *Client) generateBinary(ctx context.Context, path, text string) ([]byte, string, error) {
	body, err := json.Marshal(GenerateRequest{Text: text})
	if err != nil {
		return nil, "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}

	resp, err := c.do(c.httpClient, req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &ClientError{Type: ErrTypeConnection, Message: "failed to read binary payload", Cause: err}
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyBody
	}

	return data, resp.Header.Get("Content-Type"), nil
}
