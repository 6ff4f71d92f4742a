package notifications

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/whatsapp"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package notifications_test -source=interfaces.go

type Channel interface {
	SendMessage(ctx context.Context, to string, text string) (*whatsapp.SendMessageResponse, error)
}

type Repo interface {
	AddMessage(ctx context.Context, msg *database.ConversationMessage) (bool, error)
}
