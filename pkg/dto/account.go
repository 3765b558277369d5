package dto

import "github.com/shopspring/decimal"

// AccountRead is the read-side projection of an account: its balance and display number.
type AccountRead struct {
	ID            int64           // Store-assigned account identifier
	Balance       decimal.Decimal // Current balance
	AccountNumber string          // Opaque display number
}

// AccountCreate is a DTO for opening a new account.
type AccountCreate struct {
	AccountNumber string          // Generated when empty
	Balance       decimal.Decimal // Initial balance, no transaction is recorded for it
}
