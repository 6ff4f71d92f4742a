package ledger

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/media"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/whatsapp"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package ledger_test -source=interfaces.go

type Repo interface {
	AddTransaction(ctx context.Context, tx *database.Transaction) (bool, error)
	IsTransactionPosted(ctx context.Context, sourceMessageID string) (bool, error)
	AddRecurringBill(ctx context.Context, bill *database.RecurringBill) error
}

type MediaFetcher interface {
	GetMedia(ctx context.Context, mediaID string) (*whatsapp.Media, error)
}

type RecordExtractor interface {
	ExtractFinancialRecord(ctx context.Context, image []byte, mimeType string) (*media.FinancialRecord, error)
}

type Replier interface {
	Reply(ctx context.Context, user *database.User, text string) bool
}
