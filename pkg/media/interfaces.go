package media

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package media_test -source=interfaces.go

type SpeechClient interface {
	Transcribe(
		ctx context.Context,
		model string,
		audio []byte,
		mimeType string,
		language string,
	) (string, error)
}

type VisionClient interface {
	ChatCompletion(ctx context.Context, request *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}
