package dispatcher

import (
	"github.com/shopspring/decimal"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

// Result is what the assistant decided to do with a message. It is one of ReplyResult,
// CreateTransaction or CreateRecurringBill.
type Result interface {
	isResult()
}

type ReplyResult struct {
	Text string
}

type CreateTransaction struct {
	Amount          decimal.Decimal
	Description     string
	Category        *string
	TransactionType database.TransactionType
}

type CreateRecurringBill struct {
	Name        string
	Description *string
	Amount      decimal.NullDecimal
	DueDay      int
	Category    *string
}

func (ReplyResult) isResult()         {}
func (CreateTransaction) isResult()   {}
func (CreateRecurringBill) isResult() {}

// Snapshot is the financial context handed to the model along with the message.
type Snapshot struct {
	Totals []*database.CategoryTotal
	Recent []*database.Transaction
	Bills  []*database.RecurringBill
}

type transactionArgs struct {
	Amount          any    `json:"amount"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	TransactionType string `json:"transaction_type"`
}

type recurringBillArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	DueDay      any    `json:"due_day"`
	Category    string `json:"category"`
}
