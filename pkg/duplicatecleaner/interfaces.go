package duplicatecleaner

import (
	"context"
	"time"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package duplicatecleaner_test -source=interfaces.go

type Repo interface {
	GetInboundMessage(ctx context.Context, providerMessageID string) (*database.ConversationMessage, error)
}

type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
