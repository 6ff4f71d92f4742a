package database

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	PhoneNumber string `gorm:"type:varchar(32);not null;uniqueIndex:ux_users_phone_number"`
	DisplayName string
	ClientID    string `gorm:"type:varchar(64);index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserProfile links a channel identity to a registered account. Rows are written by the
// registration flow; the assistant only counts them.
type UserProfile struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);not null;index"`
	ClientID  string `gorm:"type:varchar(64)"`
	CreatedAt time.Time
}

type ConversationMessage struct {
	ID                string           `gorm:"type:varchar(36);primaryKey"`
	UserID            string           `gorm:"type:varchar(36);not null;index"`
	ProviderMessageID *string          `gorm:"type:varchar(128);uniqueIndex:ux_conversation_provider_message"`
	Direction         MessageDirection `gorm:"type:varchar(16);not null"`
	Kind              MessageKind      `gorm:"column:message_kind;type:varchar(16);not null"`
	Content           string
	AIResponse        *string
	Processed         bool
	CreatedAt         time.Time `gorm:"index"`
}

type Transaction struct {
	ID              string          `gorm:"type:varchar(36);primaryKey"`
	UserID          string          `gorm:"type:varchar(36);not null;index"`
	ClientID        string          `gorm:"type:varchar(64)"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description     string
	Category        string            `gorm:"type:varchar(64);not null"`
	TransactionType TransactionType   `gorm:"type:varchar(16);not null"`
	Date            time.Time         `gorm:"type:date;not null"`
	Source          TransactionSource `gorm:"type:varchar(32);not null"`
	OriginalMessage string
	// SourceMessageID is set for posts that must happen at most once per trigger
	// (image message id, bill reminder key).
	SourceMessageID *string `gorm:"type:varchar(160);uniqueIndex:ux_transactions_source_message"`
	CreatedAt       time.Time
}

type RecurringBill struct {
	ID                   string `gorm:"type:varchar(36);primaryKey"`
	UserID               string `gorm:"type:varchar(36);not null;index"`
	ClientID             string `gorm:"type:varchar(64)"`
	Name                 string `gorm:"not null"`
	Description          *string
	Amount               decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	DueDay               int                 `gorm:"not null;index"`
	Category             *string
	IsActive             bool `gorm:"not null;index"`
	LastNotificationSent *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type BillNotification struct {
	ID               string             `gorm:"type:varchar(36);primaryKey"`
	RecurringBillID  string             `gorm:"type:varchar(36);not null;uniqueIndex:ux_bill_notifications_day,priority:1"`
	UserID           string             `gorm:"type:varchar(36);not null"`
	NotificationDate time.Time          `gorm:"type:date;not null;uniqueIndex:ux_bill_notifications_day,priority:2"`
	Status           NotificationStatus `gorm:"type:varchar(16);not null"`
	CreatedAt        time.Time
}

// CategoryTotal is one row of the per-type, per-category aggregate used for the assistant context.
type CategoryTotal struct {
	TransactionType TransactionType
	Category        string
	Total           decimal.Decimal
}
