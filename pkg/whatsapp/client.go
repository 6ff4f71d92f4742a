package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
)

const DefaultGraphURL = "https://graph.facebook.com"

// Client talks to the WhatsApp Cloud API (Graph API) for one business phone number.
type Client struct {
	client        *req.Client
	accessToken   string
	phoneNumberID string
	baseURL       string
}

func NewClient(
	accessToken string,
	phoneNumberID string,
	graphURL string,
	apiVersion string,
	cl *req.Client,
) *Client {
	if graphURL == "" {
		graphURL = DefaultGraphURL
	}

	return &Client{
		client:        cl,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		baseURL:       fmt.Sprintf("%s/%s", strings.TrimRight(graphURL, "/"), apiVersion),
	}
}

func (c *Client) SendMessage(
	ctx context.Context,
	to string,
	text string,
) (*SendMessageResponse, error) {
	var result SendMessageResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBearerAuthToken(c.accessToken).
		SetBody(&sendMessageRequest{
			MessagingProduct: "whatsapp",
			RecipientType:    "individual",
			To:               to,
			Type:             "text",
			Text: textPayload{
				Body: text,
			},
		}).
		SetSuccessResult(&result).
		Post(fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}

	if resp.IsErrorState() {
		return nil, errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return &result, nil
}

// GetMedia resolves the short-lived download url of mediaID and downloads it. Any failure
// is reported as common.ErrMediaUnavailable.
func (c *Client) GetMedia(
	ctx context.Context,
	mediaID string,
) (*Media, error) {
	var info mediaInfo

	resp, err := c.client.R().
		SetContext(ctx).
		SetBearerAuthToken(c.accessToken).
		SetSuccessResult(&info).
		Get(fmt.Sprintf("%s/%s", c.baseURL, mediaID))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to lookup media %s", mediaID), common.ErrMediaUnavailable)
	}

	if resp.IsErrorState() || info.URL == "" {
		return nil, errors.Mark(
			errors.Newf("media lookup %s returned %v: %s", mediaID, resp.StatusCode, resp.String()),
			common.ErrMediaUnavailable,
		)
	}

	fileResp, err := c.client.R().
		SetContext(ctx).
		SetBearerAuthToken(c.accessToken).
		Get(info.URL)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to download media %s", mediaID), common.ErrMediaUnavailable)
	}

	if fileResp.IsErrorState() {
		return nil, errors.Mark(
			errors.Newf("media download %s returned %v", mediaID, fileResp.StatusCode),
			common.ErrMediaUnavailable,
		)
	}

	data, err := fileResp.ToBytes()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read media body"), common.ErrMediaUnavailable)
	}

	mimeType := info.MimeType
	if mimeType == "" {
		mimeType = fileResp.GetContentType()
	}

	return &Media{
		ID:       mediaID,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
