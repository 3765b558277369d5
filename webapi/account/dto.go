package account

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/shopspring/decimal"
)

//revive:disable

// AccountParams holds the account id path parameter. Any integer is
// accepted; ids that do not resolve are reported as not found.
type AccountParams struct {
	AccountID int64 `params:"accountId"`
}

// AmountQuery holds the amount query parameter of deposit and withdraw.
// The amount is kept as a decimal string to avoid float rounding.
type AmountQuery struct {
	Amount string `query:"amount" validate:"required,numeric"`
}

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"omitempty,max=64"`
	Balance       decimal.Decimal `json:"balance"`
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID            int64   `json:"id,omitempty"`
	Balance       float64 `json:"balance"`
	AccountNumber string  `json:"accountNumber"`
}

// TransactionDTO is the API representation of a statement line.
type TransactionDTO struct {
	Date            time.Time  `json:"date"`
	Amount          float64    `json:"amount"`
	Balance         float64    `json:"balance"`
	TransactionType string     `json:"transactionType"`
	Account         AccountDTO `json:"account"`
}

// ToAccountDTO maps a dto.AccountRead to an AccountDTO.
func ToAccountDTO(a *dto.AccountRead) AccountDTO {
	return AccountDTO{
		Balance:       a.Balance.InexactFloat64(),
		AccountNumber: a.AccountNumber,
	}
}

// ToTransactionDTO maps a dto.TransactionRead to a TransactionDTO.
func ToTransactionDTO(tx *dto.TransactionRead) TransactionDTO {
	return TransactionDTO{
		Date:            tx.Date,
		Amount:          tx.Amount.InexactFloat64(),
		Balance:         tx.Balance.InexactFloat64(),
		TransactionType: tx.TransactionType,
		Account:         ToAccountDTO(&tx.Account),
	}
}
