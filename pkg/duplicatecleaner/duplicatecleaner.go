package duplicatecleaner

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
)

const claimPrefix = "wa:msg:"

type DuplicateCleaner struct {
	repo    Repo
	claimer Claimer
	ttl     time.Duration
}

// NewDuplicateCleaner builds the provider message id guard. claimer is optional.
func NewDuplicateCleaner(
	repo Repo,
	claimer Claimer,
	ttl time.Duration,
) *DuplicateCleaner {
	return &DuplicateCleaner{
		repo:    repo,
		claimer: claimer,
		ttl:     ttl,
	}
}

// IsDuplicate returns common.ErrDuplicate when the message was already logged or another
// delivery of it is in flight.
func (d *DuplicateCleaner) IsDuplicate(
	ctx context.Context,
	providerMessageID string,
) error {
	if providerMessageID == "" {
		return nil
	}

	existing, err := d.repo.GetInboundMessage(ctx, providerMessageID)
	if err != nil {
		return err
	}

	if existing != nil {
		return common.ErrDuplicate
	}

	if d.claimer == nil {
		return nil
	}

	claimed, err := d.claimer.Claim(ctx, claimPrefix+d.HashKey(providerMessageID), d.ttl)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("provider_message_id", providerMessageID).
			Msg("claim failed, relying on database check only")

		return nil
	}

	if !claimed {
		return common.ErrDuplicate
	}

	return nil
}

// Release drops the in-flight claim so a redelivery of a message that failed before it was
// logged gets processed again.
func (d *DuplicateCleaner) Release(
	ctx context.Context,
	providerMessageID string,
) {
	if providerMessageID == "" || d.claimer == nil {
		return
	}

	if err := d.claimer.Release(ctx, claimPrefix+d.HashKey(providerMessageID)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("provider_message_id", providerMessageID).
			Msg("failed to release claim")
	}
}

func (d *DuplicateCleaner) HashKey(bv string) string {
	shaImpl := sha512.New()
	shaImpl.Write([]byte(bv))

	return fmt.Sprintf("%x", shaImpl.Sum(nil))
}
