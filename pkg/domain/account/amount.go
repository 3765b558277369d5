package account

import (
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Amounts and balances are persisted as numeric(19,4).
const (
	AmountScale       = 4
	AmountIntegerSize = 15
)

var amountLimit = decimal.New(1, AmountIntegerSize)

// CheckAmount reports domain.ErrAmountOutOfRange when v cannot be stored
// without rounding.
func CheckAmount(v decimal.Decimal) error {
	if !v.Equal(v.Truncate(AmountScale)) || v.Abs().GreaterThanOrEqual(amountLimit) {
		return domain.ErrAmountOutOfRange
	}
	return nil
}
