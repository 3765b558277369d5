package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecordedEventType identifies TransactionRecorded on the event bus.
const TransactionRecordedEventType = "TransactionRecorded"

// TransactionRecorded is emitted after a deposit or withdrawal has been committed.
type TransactionRecorded struct {
	TransactionID   int64           `json:"transaction_id"`
	AccountID       int64           `json:"account_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	Date            time.Time       `json:"date"`
}

// EventType returns the type of the TransactionRecorded event.
func (e TransactionRecorded) EventType() string { return TransactionRecordedEventType }

// NewTransactionRecorded builds the event for a persisted transaction.
func NewTransactionRecorded(tx *Transaction) TransactionRecorded {
	return TransactionRecorded{
		TransactionID:   tx.ID,
		AccountID:       tx.AccountID,
		TransactionType: tx.Type,
		Amount:          tx.Amount,
		Balance:         tx.Balance,
		Date:            tx.Date,
	}
}
