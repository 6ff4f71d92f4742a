package main

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/processor"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/whatsapp"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type MessageProcessor interface {
	ProcessMessages(
		ctx context.Context,
		messages []processor.InboundMessage,
	) error
}

type ChannelSender interface {
	SendMessage(ctx context.Context, to string, text string) (*whatsapp.SendMessageResponse, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
