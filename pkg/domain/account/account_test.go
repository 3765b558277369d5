package account_test

import (
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	acc := domainaccount.New().WithID(7).WithAccountNumber("ACC-1").Build()
	assert.Equal(t, int64(7), acc.ID)
	assert.Equal(t, "ACC-1", acc.AccountNumber)
	assert.True(t, acc.Balance.IsZero())
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	acc := domainaccount.New().WithID(1).WithBalance(dec("100.0")).Build()
	at := time.Date(2025, 1, 5, 15, 30, 0, 0, time.UTC)

	tx, err := acc.Deposit(dec("50.0"), at)
	require.NoError(t, err)

	assert.True(t, acc.Balance.Equal(dec("150.0")), "balance: %s", acc.Balance)
	require.NotNil(t, tx)
	assert.Equal(t, int64(1), tx.AccountID)
	assert.True(t, tx.Amount.Equal(dec("50.0")))
	assert.True(t, tx.Balance.Equal(dec("150.0")))
	assert.Equal(t, domainaccount.TypeDeposit, tx.Type)
	assert.Equal(t, at, tx.Date)
}

func TestDeposit_NegativeAmountAppliedAsGiven(t *testing.T) {
	t.Parallel()
	acc := domainaccount.New().WithBalance(dec("100")).Build()
	tx, err := acc.Deposit(dec("-30"), time.Now())
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("70")))
	assert.True(t, tx.Amount.Equal(dec("-30")))
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("sufficient funds", func(t *testing.T) {
		acc := domainaccount.New().WithID(1).WithBalance(dec("100.0")).Build()
		tx, err := acc.Withdraw(dec("50.0"), time.Now())
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(dec("50.0")))
		assert.True(t, tx.Amount.Equal(dec("50.0")), "amount is recorded as given")
		assert.True(t, tx.Balance.Equal(dec("50.0")))
		assert.Equal(t, domainaccount.TypeWithdraw, tx.Type)
	})

	t.Run("exact balance", func(t *testing.T) {
		acc := domainaccount.New().WithBalance(dec("20")).Build()
		_, err := acc.Withdraw(dec("20"), time.Now())
		require.NoError(t, err)
		assert.True(t, acc.Balance.IsZero())
	})

	t.Run("insufficient funds", func(t *testing.T) {
		acc := domainaccount.New().WithBalance(dec("50.0")).Build()
		tx, err := acc.Withdraw(dec("100.0"), time.Now())
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.EqualError(t, err, "Insufficient funds")
		assert.Nil(t, tx)
		assert.True(t, acc.Balance.Equal(dec("50.0")), "balance must be unchanged")
	})

	t.Run("negative amount increases balance", func(t *testing.T) {
		acc := domainaccount.New().WithBalance(dec("10")).Build()
		tx, err := acc.Withdraw(dec("-5"), time.Now())
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(dec("15")))
		assert.True(t, tx.Amount.Equal(dec("-5")))
		assert.Equal(t, domainaccount.TypeWithdraw, tx.Type)
	})
}

func TestAmountOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance string
		amount  string
		op      func(a *domainaccount.Account, amount decimal.Decimal) error
	}{
		{"deposit with five decimals", "0", "0.00001", deposit},
		{"deposit with sixteen integer digits", "0", "1234567890123456", deposit},
		{"deposit overflowing balance", "999999999999999", "1", deposit},
		{"withdraw with five decimals", "10", "0.00001", withdraw},
		{"withdraw overflowing balance", "999999999999999", "-1", withdraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domainaccount.New().WithBalance(dec(tt.balance)).Build()
			err := tt.op(acc, dec(tt.amount))
			require.ErrorIs(t, err, domain.ErrAmountOutOfRange)
			assert.True(t, acc.Balance.Equal(dec(tt.balance)), "balance must be unchanged")
		})
	}
}

func TestCheckAmount(t *testing.T) {
	t.Parallel()
	require.NoError(t, domainaccount.CheckAmount(dec("999999999999999.9999")))
	require.NoError(t, domainaccount.CheckAmount(dec("-12.5000")))
	require.NoError(t, domainaccount.CheckAmount(dec("1.10000")))
	assert.ErrorIs(t, domainaccount.CheckAmount(dec("12345678901234567.89")), domain.ErrAmountOutOfRange)
	assert.ErrorIs(t, domainaccount.CheckAmount(dec("0.12345")), domain.ErrAmountOutOfRange)
}

func deposit(a *domainaccount.Account, amount decimal.Decimal) error {
	_, err := a.Deposit(amount, time.Now())
	return err
}

func withdraw(a *domainaccount.Account, amount decimal.Decimal) error {
	_, err := a.Withdraw(amount, time.Now())
	return err
}

func TestTransactionType_Valid(t *testing.T) {
	t.Parallel()
	assert.True(t, domainaccount.TypeDeposit.Valid())
	assert.True(t, domainaccount.TypeWithdraw.Valid())
	assert.False(t, domainaccount.TransactionType("TRANSFER").Valid())
}

func TestNewTransactionRecorded(t *testing.T) {
	t.Parallel()
	at := time.Now()
	tx := domainaccount.NewTransactionFromData(3, 1, at, dec("5"), dec("15"), domainaccount.TypeDeposit)
	evt := domainaccount.NewTransactionRecorded(tx)
	assert.Equal(t, domainaccount.TransactionRecordedEventType, evt.EventType())
	assert.Equal(t, int64(3), evt.TransactionID)
	assert.Equal(t, int64(1), evt.AccountID)
	assert.True(t, evt.Balance.Equal(dec("15")))
}
