package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
)

type Result struct {
	Sent    int
	Failed  int
	Skipped int
	Posted  int
}

type Sweeper struct {
	repo     Repo
	replier  Replier
	printer  *printer.Printer
	location *time.Location
	metrics  *metrics.Metrics
}

func NewSweeper(
	repo Repo,
	replier Replier,
	printer *printer.Printer,
	location *time.Location,
	metrics *metrics.Metrics,
) *Sweeper {
	if location == nil {
		location = time.UTC
	}

	return &Sweeper{
		repo:     repo,
		replier:  replier,
		printer:  printer,
		location: location,
		metrics:  metrics,
	}
}

// DueDays lists the due_day values that fall on day. On the last day of a month it also
// covers the days the month does not have.
func DueDays(day time.Time) []int {
	lastDay := time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := []int{day.Day()}
	if day.Day() == lastDay && lastDay < 31 {
		days = append(days, lo.RangeFrom(lastDay+1, 31-lastDay)...)
	}

	return days
}

// BillPostKey identifies the transaction auto-posted for a bill on a given day.
func BillPostKey(billID string, date time.Time) string {
	return fmt.Sprintf("bill:%s:%s", billID, date.Format("2006-01-02"))
}

// Run sends the reminders due on now's calendar day. A failing bill is counted and
// skipped; only failing to list bills aborts the sweep.
func (s *Sweeper) Run(ctx context.Context, now time.Time) (*Result, error) {
	local := now.In(s.location)
	today := database.DateOnly(local)

	lg := zerolog.Ctx(ctx).With().Str("date", today.Format("2006-01-02")).Logger()
	ctx = lg.WithContext(ctx)

	bills, err := s.repo.ListBillsDueOn(ctx, DueDays(local))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bills due today")
	}

	result := &Result{}

	for _, bill := range bills {
		billCtx := lg.With().Str("bill_id", bill.ID).Str("user_id", bill.UserID).Logger().WithContext(ctx)

		outcome, posted, billErr := s.remind(billCtx, bill, today, now)
		if billErr != nil {
			s.metrics.Error("reminders")
			zerolog.Ctx(billCtx).Err(billErr).Msg("failed to process bill")
		}

		switch outcome {
		case outcomeSent:
			result.Sent++
		case outcomeFailed:
			result.Failed++
		default:
			result.Skipped++
		}

		if posted {
			result.Posted++
		}
	}

	s.metrics.Sweep("sent", result.Sent)
	s.metrics.Sweep("failed", result.Failed)
	s.metrics.Sweep("skipped", result.Skipped)
	s.metrics.Sweep("posted", result.Posted)

	lg.Info().
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("posted", result.Posted).
		Msg("bill reminder sweep finished")

	return result, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

func (s *Sweeper) remind(
	ctx context.Context,
	bill *database.RecurringBill,
	today time.Time,
	now time.Time,
) (outcome, bool, error) {
	lg := zerolog.Ctx(ctx)

	notified, err := s.repo.IsBillNotified(ctx, bill.ID, today)
	if err != nil {
		return outcomeFailed, false, err
	}
	if notified {
		lg.Debug().Msg("bill already notified today")
		return outcomeSkipped, false, nil
	}

	user, err := s.repo.GetUserByID(ctx, bill.UserID)
	if err != nil {
		return outcomeFailed, false, err
	}
	if user == nil {
		lg.Warn().Msg("bill owner not found")
		return outcomeSkipped, false, nil
	}

	profiles, err := s.repo.CountProfiles(ctx, user.ID)
	if err != nil {
		return outcomeFailed, false, err
	}
	if profiles == 0 {
		lg.Debug().Msg("bill owner is not registered")
		return outcomeSkipped, false, nil
	}

	tx, err := s.post(ctx, user, bill, today)
	if err != nil {
		s.metrics.Error("reminders")
		lg.Err(err).Msg("failed to auto-post bill transaction")
	}

	sent := s.replier.Reply(ctx, user, s.printer.BillReminder(bill, tx))

	out := lo.Ternary(sent, outcomeSent, outcomeFailed)
	status := lo.Ternary(sent, database.NotificationStatusSent, database.NotificationStatusFailed)

	inserted, err := s.repo.AddBillNotification(ctx, &database.BillNotification{
		RecurringBillID:  bill.ID,
		UserID:           user.ID,
		NotificationDate: today,
		Status:           status,
	})
	if err != nil {
		return out, tx != nil, err
	}
	if !inserted {
		lg.Warn().Msg("bill notification recorded by a concurrent sweep")
	}

	if err = s.repo.MarkBillNotified(ctx, bill.ID, now); err != nil {
		return out, tx != nil, err
	}

	return out, tx != nil, nil
}

// post records the bill as an expense when its amount is known. It returns nil when the
// amount is unknown or the bill was already posted for that day.
func (s *Sweeper) post(
	ctx context.Context,
	user *database.User,
	bill *database.RecurringBill,
	today time.Time,
) (*database.Transaction, error) {
	if !bill.Amount.Valid || !bill.Amount.Decimal.IsPositive() {
		return nil, nil
	}

	category := common.DefaultCategory
	if bill.Category != nil && *bill.Category != "" {
		category = *bill.Category
	}

	tx := &database.Transaction{
		UserID:          user.ID,
		ClientID:        lo.Ternary(bill.ClientID != "", bill.ClientID, user.ClientID),
		Amount:          bill.Amount.Decimal,
		Description:     bill.Name,
		Category:        category,
		TransactionType: database.TransactionTypeExpense,
		Date:            today,
		Source:          database.SourceRecurringBill,
		OriginalMessage: fmt.Sprintf("Conta recorrente: %s", bill.Name),
		SourceMessageID: lo.ToPtr(BillPostKey(bill.ID, today)),
	}

	inserted, err := s.repo.AddTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}

	s.metrics.LedgerWrite("transaction", string(tx.Source))

	return tx, nil
}
