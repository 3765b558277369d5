package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of balance-changing events.
type TransactionType string

// Transaction types, stored and serialized verbatim.
const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypeWithdraw
}

func (t TransactionType) String() string { return string(t) }

// Transaction is an immutable record of a balance change and the balance
// that resulted from it.
type Transaction struct {
	ID        int64
	AccountID int64
	Date      time.Time
	Amount    decimal.Decimal
	Balance   decimal.Decimal // account balance right after this transaction
	Type      TransactionType
}

func newTransaction(a *Account, amount decimal.Decimal, t TransactionType, at time.Time) *Transaction {
	return &Transaction{
		AccountID: a.ID,
		Date:      at,
		Amount:    amount,
		Balance:   a.Balance,
		Type:      t,
	}
}

// NewTransactionFromData creates a Transaction from raw data (used for DB hydration or test fixtures).
func NewTransactionFromData(
	id, accountID int64,
	date time.Time,
	amount, balance decimal.Decimal,
	t TransactionType,
) *Transaction {
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Balance:   balance,
		Type:      t,
	}
}
