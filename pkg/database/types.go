package database

import "time"

type TransactionType string

const (
	TransactionTypeIncome  = TransactionType("income")
	TransactionTypeExpense = TransactionType("expense")
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type TransactionSource string

const (
	SourceManual        = TransactionSource("manual")
	SourceWhatsAppImage = TransactionSource("whatsapp_image")
	SourceRecurringBill = TransactionSource("recurring_bill")
	SourceTransfer      = TransactionSource("transfer")
)

type MessageDirection string

const (
	DirectionInbound  = MessageDirection("inbound")
	DirectionOutbound = MessageDirection("outbound")
)

type MessageKind string

const (
	MessageKindText  = MessageKind("text")
	MessageKindAudio = MessageKind("audio")
	MessageKindImage = MessageKind("image")
	// MessageKindOther covers stickers, locations, documents and the like.
	MessageKindOther = MessageKind("other")
)

type NotificationStatus string

const (
	NotificationStatusSent   = NotificationStatus("sent")
	NotificationStatusFailed = NotificationStatus("failed")
)

// DateOnly truncates t to midnight UTC of its calendar day in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
