package repo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (r *Repository) GetUserByPhone(
	ctx context.Context,
	phoneNumber string,
) (*database.User, error) {
	var user database.User

	err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by phone")
	}

	return &user, nil
}

func (r *Repository) GetUserByID(
	ctx context.Context,
	id string,
) (*database.User, error) {
	var user database.User

	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// CreateUser inserts the user unless the phone number is already taken, and returns the
// stored row either way.
func (r *Repository) CreateUser(
	ctx context.Context,
	user *database.User,
) (*database.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	stored, err := r.GetUserByPhone(ctx, user.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.Newf("user %s vanished after insert", user.PhoneNumber)
	}

	return stored, nil
}

func (r *Repository) CountProfiles(
	ctx context.Context,
	userID string,
) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&database.UserProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count profiles")
	}

	return count, nil
}

func (r *Repository) GetInboundMessage(
	ctx context.Context,
	providerMessageID string,
) (*database.ConversationMessage, error) {
	var msg database.ConversationMessage

	err := r.db.WithContext(ctx).
		Where("provider_message_id = ? AND direction = ?", providerMessageID, database.DirectionInbound).
		Take(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get inbound message")
	}

	return &msg, nil
}

// AddMessage reports false when a row with the same provider message id already exists.
func (r *Repository) AddMessage(
	ctx context.Context,
	msg *database.ConversationMessage,
) (bool, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(msg)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to add message")
	}

	return res.RowsAffected > 0, nil
}

func (r *Repository) MarkProcessed(
	ctx context.Context,
	messageID string,
) error {
	return errors.Wrap(r.db.WithContext(ctx).
		Model(&database.ConversationMessage{}).
		Where("id = ?", messageID).
		Update("processed", true).Error, "failed to mark message processed")
}

// AddTransaction reports false when SourceMessageID was already posted.
func (r *Repository) AddTransaction(
	ctx context.Context,
	tx *database.Transaction,
) (bool, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tx)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to add transaction")
	}

	return res.RowsAffected > 0, nil
}

func (r *Repository) IsTransactionPosted(
	ctx context.Context,
	sourceMessageID string,
) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&database.Transaction{}).
		Where("source_message_id = ?", sourceMessageID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check transaction")
	}

	return count > 0, nil
}

func (r *Repository) ListRecentTransactions(
	ctx context.Context,
	userID string,
	limit int,
) ([]*database.Transaction, error) {
	var txs []*database.Transaction

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return txs, nil
}

func (r *Repository) SummarizeTransactions(
	ctx context.Context,
	userID string,
) ([]*database.CategoryTotal, error) {
	var totals []*database.CategoryTotal

	if err := r.db.WithContext(ctx).
		Model(&database.Transaction{}).
		Select("transaction_type, category, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("transaction_type, category").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to summarize transactions")
	}

	return totals, nil
}

func (r *Repository) AddRecurringBill(
	ctx context.Context,
	bill *database.RecurringBill,
) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}

	return errors.Wrap(r.db.WithContext(ctx).Create(bill).Error, "failed to add recurring bill")
}

func (r *Repository) ListActiveBills(
	ctx context.Context,
	userID string,
) ([]*database.RecurringBill, error) {
	var bills []*database.RecurringBill

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("due_day ASC").
		Find(&bills).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active bills")
	}

	return bills, nil
}

func (r *Repository) ListBillsDueOn(
	ctx context.Context,
	dueDays []int,
) ([]*database.RecurringBill, error) {
	var bills []*database.RecurringBill

	if len(dueDays) == 0 {
		return bills, nil
	}

	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND due_day IN ?", true, dueDays).
		Order("created_at ASC").
		Find(&bills).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list due bills")
	}

	return bills, nil
}

func (r *Repository) MarkBillNotified(
	ctx context.Context,
	billID string,
	at time.Time,
) error {
	return errors.Wrap(r.db.WithContext(ctx).
		Model(&database.RecurringBill{}).
		Where("id = ?", billID).
		Updates(map[string]any{
			"last_notification_sent": at,
			"updated_at":             time.Now().UTC(),
		}).Error, "failed to mark bill notified")
}

func (r *Repository) IsBillNotified(
	ctx context.Context,
	billID string,
	date time.Time,
) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&database.BillNotification{}).
		Where("recurring_bill_id = ? AND notification_date = ?", billID, database.DateOnly(date)).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check bill notification")
	}

	return count > 0, nil
}

// AddBillNotification reports false when the bill already has a notification for that day.
func (r *Repository) AddBillNotification(
	ctx context.Context,
	notification *database.BillNotification,
) (bool, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.NotificationDate = database.DateOnly(notification.NotificationDate)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(notification)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to add bill notification")
	}

	return res.RowsAffected > 0, nil
}
