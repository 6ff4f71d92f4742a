package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/common"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/dispatcher"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/media"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
)

const defaultImageDescription = "Comprovante"

type Writer struct {
	repo     Repo
	printer  *printer.Printer
	location *time.Location
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewWriter(
	repo Repo,
	printer *printer.Printer,
	location *time.Location,
	metrics *metrics.Metrics,
) *Writer {
	if location == nil {
		location = time.UTC
	}

	return &Writer{
		repo:     repo,
		printer:  printer,
		location: location,
		metrics:  metrics,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used for "today".
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

func (w *Writer) Today() time.Time {
	return database.DateOnly(w.now().In(w.location))
}

// Write persists the outcome of a dispatch and returns the text to reply with.
func (w *Writer) Write(
	ctx context.Context,
	user *database.User,
	result dispatcher.Result,
	originalText string,
) string {
	switch r := result.(type) {
	case dispatcher.ReplyResult:
		return r.Text
	case dispatcher.CreateTransaction:
		return w.writeTransaction(ctx, user, r, originalText)
	case dispatcher.CreateRecurringBill:
		return w.writeRecurringBill(ctx, user, r)
	default:
		zerolog.Ctx(ctx).Error().Msgf("unexpected dispatch result %T", result)
		return printer.NotUnderstoodText
	}
}

func (w *Writer) writeTransaction(
	ctx context.Context,
	user *database.User,
	r dispatcher.CreateTransaction,
	originalText string,
) string {
	lg := zerolog.Ctx(ctx)

	// the column keeps cents only
	amount := r.Amount.Round(2)
	if !amount.IsPositive() {
		lg.Warn().Str("amount", r.Amount.String()).Msg("dropping transaction with non-positive amount")
		return printer.NotUnderstoodText
	}

	category := common.DefaultCategory
	if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
		category = *r.Category
	}

	tx := &database.Transaction{
		UserID:          user.ID,
		ClientID:        user.ClientID,
		Amount:          amount,
		Description:     r.Description,
		Category:        category,
		TransactionType: r.TransactionType,
		Date:            w.Today(),
		Source:          database.SourceManual,
		OriginalMessage: originalText,
	}

	if _, err := w.repo.AddTransaction(ctx, tx); err != nil {
		w.metrics.Error("ledger")
		lg.Err(err).Str("user_id", user.ID).Msg("failed to save transaction")

		return printer.SaveFailedText
	}

	w.metrics.LedgerWrite("transaction", string(tx.Source))
	lg.Info().Str("user_id", user.ID).Str("transaction_id", tx.ID).Msg("transaction registered")

	return w.printer.TransactionConfirmation(tx)
}

func (w *Writer) writeRecurringBill(
	ctx context.Context,
	user *database.User,
	r dispatcher.CreateRecurringBill,
) string {
	lg := zerolog.Ctx(ctx)

	if r.DueDay < 1 || r.DueDay > 31 {
		lg.Warn().Int("due_day", r.DueDay).Msg("recurring bill without a valid due day")
		return printer.AskDueDayText
	}

	bill := &database.RecurringBill{
		UserID:      user.ID,
		ClientID:    user.ClientID,
		Name:        r.Name,
		Description: r.Description,
		Amount:      r.Amount,
		DueDay:      r.DueDay,
		Category:    r.Category,
		IsActive:    true,
	}

	if err := w.repo.AddRecurringBill(ctx, bill); err != nil {
		w.metrics.Error("ledger")
		lg.Err(err).Str("user_id", user.ID).Msg("failed to save recurring bill")

		return printer.SaveFailedText
	}

	w.metrics.LedgerWrite("recurring_bill", string(database.SourceManual))
	lg.Info().Str("user_id", user.ID).Str("bill_id", bill.ID).Msg("recurring bill registered")

	return w.printer.BillConfirmation(bill)
}

// PostImage records a transaction read from an image at most once per provider message id.
// An empty reply means the image was already posted and nothing should be sent.
func (w *Writer) PostImage(
	ctx context.Context,
	user *database.User,
	providerMessageID string,
	record *media.FinancialRecord,
	originalText string,
) string {
	lg := zerolog.Ctx(ctx)

	if !record.Usable() {
		return printer.ImageNotReadText
	}

	date := w.Today()
	if record.Date != nil {
		date = database.DateOnly(*record.Date)
	}

	description := record.Description
	if description == "" {
		description = defaultImageDescription
	}

	tx := &database.Transaction{
		UserID:          user.ID,
		ClientID:        user.ClientID,
		Amount:          *record.Amount,
		Description:     description,
		Category:        record.Category,
		TransactionType: record.TransactionType,
		Date:            date,
		Source:          database.SourceWhatsAppImage,
		OriginalMessage: originalText,
		SourceMessageID: &providerMessageID,
	}

	inserted, err := w.repo.AddTransaction(ctx, tx)
	if err != nil {
		w.metrics.Error("ledger")
		lg.Err(err).Str("user_id", user.ID).Msg("failed to save image transaction")

		return printer.SaveFailedText
	}

	if !inserted {
		lg.Info().Str("message_id", providerMessageID).Msg("image transaction already posted")
		return ""
	}

	w.metrics.LedgerWrite("transaction", string(tx.Source))

	return w.printer.ImageTransactionConfirmation(tx)
}
