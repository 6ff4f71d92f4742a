package users

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

type ResolvedUser struct {
	User         *database.User
	IsRegistered bool
}

type Resolver struct {
	repo            Repo
	defaultClientID string
}

func NewResolver(
	repo Repo,
	defaultClientID string,
) *Resolver {
	return &Resolver{
		repo:            repo,
		defaultClientID: defaultClientID,
	}
}

// ResolveOrCreate looks the user up by channel address and creates it on first contact.
// Registration is derived from linked profiles, never stored on the user row.
func (r *Resolver) ResolveOrCreate(
	ctx context.Context,
	phoneNumber string,
	displayName string,
) (*ResolvedUser, error) {
	phoneNumber = NormalizePhone(phoneNumber)
	if phoneNumber == "" {
		return nil, errors.New("empty phone number")
	}

	user, err := r.repo.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = r.repo.CreateUser(ctx, &database.User{
			PhoneNumber: phoneNumber,
			DisplayName: strings.TrimSpace(displayName),
			ClientID:    r.defaultClientID,
		})
		if err != nil {
			return nil, err
		}

		zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Msg("created user on first contact")

		return &ResolvedUser{
			User: user,
		}, nil
	}

	count, err := r.repo.CountProfiles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ResolvedUser{
		User:         user,
		IsRegistered: count > 0,
	}, nil
}

// NormalizePhone keeps only the digits of a channel address.
func NormalizePhone(phone string) string {
	var sb strings.Builder

	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
