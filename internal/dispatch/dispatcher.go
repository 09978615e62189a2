// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aiwithdastgeer/hookchat/internal/model"
	"github.com/aiwithdastgeer/hookchat/internal/store"
	"github.com/aiwithdastgeer/hookchat/internal/stream"
	"github.com/aiwithdastgeer/hookchat/internal/webhook"
)

// ErrorText is the fixed message shown when an exchange fails. A failed
// exchange always resolves its placeholder to this text; it never
// leaves a permanent loading bubble.
const ErrorText = "Something went wrong. Please try again."

// Validation errors, surfaced before any network call.
var (
	ErrEmptyInput = errors.New("input is empty")
	ErrBusy       = errors.New("an exchange is already in flight for this session")
)

// Notification is a transient out-of-chat message (used for file
// upload results and their failures).
type Notification struct {
	Text  string
	IsErr bool
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher turns one user input into exactly one outbound request and
// one response-handling strategy, and resolves the session's pending
// placeholder with the outcome.
//
// Send is synchronous; callers run it off the UI loop. Multiple
// sessions may have sends running concurrently, but BeginExchange
// enforces at most one per session.
type Dispatcher struct {
	client *webhook.Client
	store  *store.Store

	// mediaDir receives generated image/audio payloads.
	mediaDir string

	// onChange is invoked after every store mutation so the UI can
	// repaint. May be nil for headless use.
	onChange func(sessionID string)

	// notify receives transient notifications. May be nil.
	notify func(Notification)
}

// New creates a dispatcher.
func New(client *webhook.Client, st *store.Store, mediaDir string) *Dispatcher {
	return &Dispatcher{
		client:   client,
		store:    st,
		mediaDir: mediaDir,
	}
}

// OnChange registers the repaint hook.
func (d *Dispatcher) OnChange(fn func(sessionID string)) {
	d.onChange = fn
}

// OnNotify registers the transient-notification hook.
func (d *Dispatcher) OnNotify(fn func(Notification)) {
	d.notify = fn
}

// =============================================================================
// SEND
// =============================================================================

// Send runs one exchange for the identified session: validate, lock,
// append the user message and placeholder, perform the call, resolve
// the placeholder. All transport and decode failures are absorbed here
// and converted to user-visible text; Send only returns validation and
// locking errors, which the caller surfaces inline.
func (d *Dispatcher) Send(ctx context.Context, sessionID string, in Input) error {
	if err := validate(in); err != nil {
		return err
	}

	if !d.store.BeginExchange(sessionID) {
		return ErrBusy
	}
	defer d.store.EndExchange(sessionID)

	switch v := in.(type) {
	case TextInput:
		d.sendText(ctx, sessionID, v)
	case FileInput:
		d.sendFile(ctx, sessionID, v)
	case ImageAnalyzeInput:
		d.sendImageAnalyze(ctx, sessionID, v)
	case ImageGenerateInput:
		d.generateImage(ctx, sessionID, v.Prompt)
	case VoiceInput:
		d.sendVoice(ctx, sessionID, v)
	case ToolInput:
		d.sendTool(ctx, sessionID, v)
	default:
		return ErrEmptyInput
	}
	return nil
}

// validate rejects malformed input before any network call.
func validate(in Input) error {
	switch v := in.(type) {
	case TextInput:
		if strings.TrimSpace(v.Message) == "" {
			return ErrEmptyInput
		}
	case FileInput:
		if v.Path == "" {
			return ErrEmptyInput
		}
	case ImageAnalyzeInput:
		if v.Path == "" {
			return ErrEmptyInput
		}
	case ImageGenerateInput:
		if strings.TrimSpace(v.Prompt) == "" {
			return ErrEmptyInput
		}
	case VoiceInput:
		if strings.TrimSpace(v.Text) == "" && v.AudioPath == "" {
			return ErrEmptyInput
		}
	case ToolInput:
		if strings.TrimSpace(v.Prompt) == "" {
			return ErrEmptyInput
		}
	case nil:
		return ErrEmptyInput
	}
	return nil
}

// =============================================================================
// PER-KIND STRATEGIES
// =============================================================================

// sendText posts to the chat endpoint and streams the reply into the
// placeholder, overwriting the display text on every chunk.
func (d *Dispatcher) sendText(ctx context.Context, sessionID string, in TextInput) {
	d.store.AppendUserMessage(sessionID, model.NewUserMessage(in.Message))
	d.store.AppendPlaceholder(sessionID)
	d.changed(sessionID)

	body, err := d.client.SendMessage(ctx, in.Message)
	if err != nil {
		d.fail(sessionID, err)
		return
	}
	defer body.Close()

	final, err := stream.DecodeBody(ctx, body, func(display string) {
		d.store.UpdateAssistantText(sessionID, display)
		d.changed(sessionID)
	})
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	log.Printf("DISPATCH: chat reply sealed for %s: %s", sessionID, stream.Preview(final, 80))
	d.store.SealAssistant(sessionID, final, nil)
	d.changed(sessionID)
}

// sendFile uploads a file and surfaces the single JSON reply as a
// transient notification. No placeholder: the chat only records the
// user's upload.
func (d *Dispatcher) sendFile(ctx context.Context, sessionID string, in FileInput) {
	att := model.NewFileAttachment(in.Path, filepath.Base(in.Path))
	d.store.AppendUserMessage(sessionID, model.NewUserMessageWithAttachment(in.Message, att))
	d.changed(sessionID)

	resp, err := d.client.UploadFile(ctx, in.Path, in.Message)
	if err != nil {
		log.Printf("DISPATCH: file upload failed session=%s err=%v", sessionID, err)
		d.notifyUser(Notification{Text: ErrorText, IsErr: true})
		return
	}
	d.notifyUser(Notification{Text: resp.Output})
}

// sendImageAnalyze posts the image and resolves the placeholder with
// the flattened analysis text.
func (d *Dispatcher) sendImageAnalyze(ctx context.Context, sessionID string, in ImageAnalyzeInput) {
	att := model.NewImageAttachment(in.Path)
	d.store.AppendUserMessage(sessionID, model.NewUserMessageWithAttachment(in.Prompt, att))
	d.store.AppendPlaceholder(sessionID)
	d.changed(sessionID)

	analysis, err := d.client.AnalyzeImage(ctx, in.Path, in.Prompt)
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	d.store.SealAssistant(sessionID, analysis.DisplayText(), nil)
	d.changed(sessionID)
}

// generateImage posts the prompt, saves the binary reply under the
// media dir, and resolves the placeholder with an image attachment.
func (d *Dispatcher) generateImage(ctx context.Context, sessionID, prompt string) {
	d.store.AppendUserMessage(sessionID, model.NewUserMessage(prompt))
	d.store.AppendPlaceholder(sessionID)
	d.changed(sessionID)

	data, contentType, err := d.client.GenerateImage(ctx, prompt)
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	path, err := d.saveMedia(data, contentType)
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	d.store.SealAssistant(sessionID, "", model.NewImageAttachment(path))
	d.changed(sessionID)
}

// sendVoice routes recorded audio through the multipart transcription
// path and plain text through JSON synthesis. Either way the
// placeholder resolves to an audio reference plus optional transcript.
func (d *Dispatcher) sendVoice(ctx context.Context, sessionID string, in VoiceInput) {
	var userMsg *model.Message
	if in.AudioPath != "" {
		userMsg = model.NewUserMessageWithAttachment(in.Text, model.NewAudioAttachment(in.AudioPath))
	} else {
		userMsg = model.NewUserMessage(in.Text)
	}
	d.store.AppendUserMessage(sessionID, userMsg)
	d.store.AppendPlaceholder(sessionID)
	d.changed(sessionID)

	var result *webhook.AudioResult
	var err error
	if in.AudioPath != "" {
		result, err = d.client.TranscribeAudio(ctx, in.AudioPath)
	} else {
		result, err = d.client.GenerateAudio(ctx, in.Text)
	}
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	ref := result.URL
	if ref == "" && len(result.Data) > 0 {
		ref, err = d.saveMedia(result.Data, "audio/mpeg")
		if err != nil {
			d.fail(sessionID, err)
			return
		}
	}

	var att *model.Attachment
	if ref != "" {
		att = model.NewAudioAttachment(ref)
	}
	d.store.SealAssistant(sessionID, result.Transcript, att)
	d.changed(sessionID)
}

// sendTool wraps the prompt with the tool template. The image tool uses
// the binary generation path; every other tool goes through the shared
// JSON endpoint.
func (d *Dispatcher) sendTool(ctx context.Context, sessionID string, in ToolInput) {
	if in.Tool == ToolImageGen {
		d.generateImage(ctx, sessionID, in.Prompt)
		return
	}

	prompt := TemplatePrompt(in.Tool, in.Prompt)
	d.store.AppendUserMessage(sessionID, model.NewUserMessage(in.Prompt))
	d.store.AppendPlaceholder(sessionID)
	d.changed(sessionID)

	output, err := d.client.InvokeTool(ctx, prompt)
	if err != nil {
		d.fail(sessionID, err)
		return
	}

	d.store.SealAssistant(sessionID, output, nil)
	d.changed(sessionID)
}

// =============================================================================
// HELPERS
// =============================================================================

// fail resolves the pending placeholder to the fixed error text.
func (d *Dispatcher) fail(sessionID string, err error) {
	log.Printf("DISPATCH: exchange failed session=%s err=%v", sessionID, err)
	d.store.SealAssistantError(sessionID, ErrorText)
	d.changed(sessionID)
}

func (d *Dispatcher) changed(sessionID string) {
	if d.onChange != nil {
		d.onChange(sessionID)
	}
}

func (d *Dispatcher) notifyUser(n Notification) {
	if d.notify != nil {
		d.notify(n)
	}
}

// saveMedia writes a binary payload under the media dir and returns its
// path.
func (d *Dispatcher) saveMedia(data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(d.mediaDir, 0755); err != nil {
		return "", err
	}
	name := uuid.New().String() + extensionFor(contentType)
	path := filepath.Join(d.mediaDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// extensionFor maps a response content type to a file extension.
func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	case strings.HasPrefix(contentType, "audio/mpeg"):
		return ".mp3"
	case strings.HasPrefix(contentType, "audio/wav"):
		return ".wav"
	default:
		return ".bin"
	}
}
