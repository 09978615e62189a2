// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	"github.com/aiwithdastgeer/hookchat/internal/model"
)

func TestAttachmentLine(t *testing.T) {
	tests := []struct {
		name string
		att  *model.Attachment
		want string
	}{
		{"file with name", model.NewFileAttachment("/tmp/a.pdf", "a.pdf"), "[file] a.pdf"},
		{"image falls back to ref", model.NewImageAttachment("/tmp/x.png"), "[image] /tmp/x.png"},
		{"audio falls back to ref", model.NewAudioAttachment("/tmp/v.mp3"), "[audio] /tmp/v.mp3"},
		{"falls back to ref", &model.Attachment{Kind: model.AttachmentFile, Ref: "/tmp/b.txt"}, "[file] /tmp/b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attachmentLine(tt.att); got != tt.want {
				t.Errorf("attachmentLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
