package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRead is the statement line for a single transaction.
type TransactionRead struct {
	ID              int64
	Date            time.Time
	Amount          decimal.Decimal
	Balance         decimal.Decimal // Account balance right after the transaction
	TransactionType string
	Account         AccountRead // Owning account
}
