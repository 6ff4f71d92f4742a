package processor

import (
	"context"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/dispatcher"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/ledger"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/users"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/whatsapp"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go

type Repo interface {
	AddMessage(ctx context.Context, msg *database.ConversationMessage) (bool, error)
	MarkProcessed(ctx context.Context, messageID string) error
}

type DuplicateCleaner interface {
	IsDuplicate(ctx context.Context, providerMessageID string) error
	Release(ctx context.Context, providerMessageID string)
}

type UserResolver interface {
	ResolveOrCreate(ctx context.Context, phoneNumber string, displayName string) (*users.ResolvedUser, error)
}

type MediaFetcher interface {
	GetMedia(ctx context.Context, mediaID string) (*whatsapp.Media, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, user *database.User, text string) dispatcher.Result
}

type LedgerWriter interface {
	Write(
		ctx context.Context,
		user *database.User,
		result dispatcher.Result,
		originalText string,
	) string
}

type ImageQueue interface {
	Enqueue(job ledger.ImageJob) bool
}

type Replier interface {
	Send(ctx context.Context, phoneNumber string, text string) bool
	Reply(ctx context.Context, user *database.User, text string) bool
}

type Printer interface {
	Onboarding(phoneNumber string) string
}
