package notifications

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
)

// ReplySender delivers text back to a channel address. It never returns errors: failures
// are logged and reported as false so callers can carry on.
type ReplySender struct {
	channel Channel
	repo    Repo
	metrics *metrics.Metrics
}

func NewReplySender(
	channel Channel,
	repo Repo,
	metrics *metrics.Metrics,
) *ReplySender {
	return &ReplySender{
		channel: channel,
		repo:    repo,
		metrics: metrics,
	}
}

func (s *ReplySender) Send(
	ctx context.Context,
	phoneNumber string,
	text string,
) bool {
	lg := zerolog.Ctx(ctx)

	if strings.TrimSpace(text) == "" {
		lg.Warn().Str("to", phoneNumber).Msg("refusing to send empty message")
		return false
	}

	resp, err := s.channel.SendMessage(ctx, phoneNumber, text)
	s.metrics.Outbound(err == nil)

	if err != nil {
		lg.Err(err).Str("to", phoneNumber).Msg("failed to send message")
		return false
	}

	if resp != nil && len(resp.Messages) > 0 {
		lg.Debug().Str("to", phoneNumber).Str("provider_message_id", resp.Messages[0].ID).Msg("message sent")
	}

	return true
}

// Reply sends text to the user and records it as an outbound conversation message,
// whether or not delivery succeeded.
func (s *ReplySender) Reply(
	ctx context.Context,
	user *database.User,
	text string,
) bool {
	sent := s.Send(ctx, user.PhoneNumber, text)

	if _, err := s.repo.AddMessage(ctx, &database.ConversationMessage{
		UserID:     user.ID,
		Direction:  database.DirectionOutbound,
		Kind:       database.MessageKindText,
		Content:    text,
		AIResponse: &text,
		Processed:  true,
	}); err != nil {
		s.metrics.Error("notifications")
		zerolog.Ctx(ctx).Err(err).Str("user_id", user.ID).Msg("failed to log outbound message")
	}

	return sent
}
