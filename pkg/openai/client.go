package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	cl      *req.Client
	apiKey  string
	baseURL string
}

func NewClient(
	apiKey string,
	baseURL string,
	cl *req.Client,
) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		cl:      cl,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) ChatCompletion(
	ctx context.Context,
	request *ChatCompletionRequest,
) (*ChatCompletionResponse, error) {
	if !c.Configured() {
		return nil, errors.Wrap(common.ErrNotConfigured, "openai api key is empty")
	}

	var result ChatCompletionResponse

	resp, err := c.cl.R().
		SetContext(ctx).
		SetBearerAuthToken(c.apiKey).
		SetBody(request).
		SetSuccessResult(&result).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return nil, errors.Wrap(err, "chat completion request failed")
	}

	if resp.IsErrorState() {
		return nil, toAPIError(resp)
	}

	if len(result.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return &result, nil
}

func (c *Client) Transcribe(
	ctx context.Context,
	model string,
	audio []byte,
	mimeType string,
	language string,
) (string, error) {
	if !c.Configured() {
		return "", errors.Wrap(common.ErrNotConfigured, "openai api key is empty")
	}

	var result transcriptionResponse

	form := map[string]string{
		"model": model,
	}
	if language != "" {
		form["language"] = language
	}

	resp, err := c.cl.R().
		SetContext(ctx).
		SetBearerAuthToken(c.apiKey).
		SetFormData(form).
		SetFileBytes("file", audioFileName(mimeType), audio).
		SetSuccessResult(&result).
		Post(c.baseURL + "/audio/transcriptions")
	if err != nil {
		return "", errors.Wrap(err, "transcription request failed")
	}

	if resp.IsErrorState() {
		return "", toAPIError(resp)
	}

	return result.Text, nil
}

// ImageDataURL embeds raw image bytes so they can be passed as an image_url content part.
func ImageDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func audioFileName(mimeType string) string {
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		base = mimeType
	}

	switch base {
	case "audio/ogg", "audio/opus":
		return "audio.ogg"
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return "audio.m4a"
	case "audio/aac":
		return "audio.aac"
	case "audio/amr":
		return "audio.amr"
	case "audio/wav", "audio/x-wav":
		return "audio.wav"
	case "audio/webm":
		return "audio.webm"
	default:
		return "audio.ogg"
	}
}

func toAPIError(resp *req.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    resp.String(),
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.Mark(apiErr, common.ErrRateLimited)
	}

	return apiErr
}
