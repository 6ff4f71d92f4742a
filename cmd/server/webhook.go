package main

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/processor"
)

// silentTypes are never answered: a reply to a reaction or a system notice is noise.
var silentTypes = []string{"reaction", "system", "ephemeral"}

// ToInboundMessages flattens a webhook delivery into typed messages in arrival order.
// Messages missing their payload, and silent types, are logged and dropped.
func ToInboundMessages(ctx context.Context, webhook *Webhook) []processor.InboundMessage {
	lg := zerolog.Ctx(ctx)

	var result []processor.InboundMessage

	for _, entry := range webhook.Entry {
		for _, change := range entry.Changes {
			names := lo.SliceToMap(change.Value.Contacts, func(c Contact) (string, string) {
				return c.WaID, c.Profile.Name
			})

			for _, msg := range change.Value.Messages {
				env := processor.Envelope{
					ProviderMessageID: msg.ID,
					From:              msg.From,
					DisplayName:       names[msg.From],
					Timestamp:         parseTimestamp(msg.Timestamp),
				}

				if env.DisplayName == "" && len(change.Value.Contacts) == 1 {
					env.DisplayName = change.Value.Contacts[0].Profile.Name
				}

				inbound, ok := toInbound(env, msg)
				if !ok {
					lg.Warn().
						Str("message_id", msg.ID).
						Str("type", msg.Type).
						Msg("skipping message")
					continue
				}

				result = append(result, inbound)
			}
		}
	}

	return result
}

func toInbound(env processor.Envelope, msg Message) (processor.InboundMessage, bool) {
	if msg.ID == "" || msg.From == "" {
		return nil, false
	}

	switch msg.Type {
	case "text":
		if msg.Text == nil {
			return nil, false
		}

		return processor.TextMessage{
			Envelope: env,
			Body:     msg.Text.Body,
		}, true
	case "audio":
		if msg.Audio == nil || msg.Audio.ID == "" {
			return nil, false
		}

		return processor.AudioMessage{
			Envelope: env,
			MediaID:  msg.Audio.ID,
			MimeType: msg.Audio.MimeType,
		}, true
	case "image":
		if msg.Image == nil || msg.Image.ID == "" {
			return nil, false
		}

		return processor.ImageMessage{
			Envelope: env,
			MediaID:  msg.Image.ID,
			MimeType: msg.Image.MimeType,
			Caption:  msg.Image.Caption,
		}, true
	default:
		if msg.Type == "" || lo.Contains(silentTypes, msg.Type) {
			return nil, false
		}

		return processor.UnsupportedMessage{
			Envelope: env,
			Type:     msg.Type,
		}, true
	}
}

func parseTimestamp(raw string) time.Time {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return time.Time{}
	}

	return time.Unix(seconds, 0).UTC()
}
