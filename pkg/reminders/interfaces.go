package reminders

import (
	"context"
	"time"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package reminders_test -source=interfaces.go

type Repo interface {
	ListBillsDueOn(ctx context.Context, dueDays []int) ([]*database.RecurringBill, error)
	IsBillNotified(ctx context.Context, billID string, date time.Time) (bool, error)
	GetUserByID(ctx context.Context, id string) (*database.User, error)
	CountProfiles(ctx context.Context, userID string) (int64, error)
	AddTransaction(ctx context.Context, tx *database.Transaction) (bool, error)
	AddBillNotification(ctx context.Context, notification *database.BillNotification) (bool, error)
	MarkBillNotified(ctx context.Context, billID string, at time.Time) error
}

type Replier interface {
	Reply(ctx context.Context, user *database.User, text string) bool
}
