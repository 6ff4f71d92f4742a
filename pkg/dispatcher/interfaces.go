package dispatcher

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/openai"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package dispatcher_test -source=interfaces.go

type ChatClient interface {
	ChatCompletion(ctx context.Context, request *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

type Repo interface {
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]*database.Transaction, error)
	SummarizeTransactions(ctx context.Context, userID string) ([]*database.CategoryTotal, error)
	ListActiveBills(ctx context.Context, userID string) ([]*database.RecurringBill, error)
}
