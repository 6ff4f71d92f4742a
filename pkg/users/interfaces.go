package users

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package users_test -source=interfaces.go

type Repo interface {
	GetUserByPhone(ctx context.Context, phoneNumber string) (*database.User, error)
	CreateUser(ctx context.Context, user *database.User) (*database.User, error)
	CountProfiles(ctx context.Context, userID string) (int64, error)
}
