package media

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
)

type Transcriber struct {
	client   SpeechClient
	model    string
	language string
}

func NewTranscriber(
	client SpeechClient,
	model string,
	language string,
) *Transcriber {
	return &Transcriber{
		client:   client,
		model:    model,
		language: language,
	}
}

// Transcribe converts a voice note into text. Every failure is marked with
// common.ErrTranscriptionFailed.
func (t *Transcriber) Transcribe(
	ctx context.Context,
	audio []byte,
	mimeType string,
) (string, error) {
	if len(audio) == 0 {
		return "", errors.Wrap(common.ErrTranscriptionFailed, "empty audio")
	}

	text, err := t.client.Transcribe(ctx, t.model, audio, mimeType, t.language)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "transcription failed"), common.ErrTranscriptionFailed)
	}

	return strings.TrimSpace(text), nil
}
