package media

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

// FinancialRecord is the vision model's guess at a receipt or statement. Category is always
// set; a nil Amount means nothing usable was read.
type FinancialRecord struct {
	Amount          *decimal.Decimal
	Date            *time.Time
	Description     string
	TransactionType database.TransactionType
	Category        string
}

func (r *FinancialRecord) Usable() bool {
	return r != nil && r.Amount != nil
}

type structuredRecord struct {
	Amount          any    `json:"amount"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	TransactionType string `json:"transaction_type"`
	Category        string `json:"category"`
}
