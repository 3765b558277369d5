package account

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Account is a monetary balance that owns an append-only history of transactions.
//
// Invariants:
//   - Balance equals the Balance snapshot of the latest Transaction, or the
//     initial balance when the account has no transactions.
//   - Balance only changes through Deposit and Withdraw.
type Account struct {
	ID            int64
	AccountNumber string
	Balance       decimal.Decimal
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id            int64
	accountNumber string
	balance       decimal.Decimal
}

// New creates a Builder for an account with a zero balance.
func New() *Builder {
	return &Builder{balance: decimal.Zero}
}

// WithID sets the store-assigned identifier. Used when hydrating from storage.
func (b *Builder) WithID(id int64) *Builder {
	b.id = id
	return b
}

// WithAccountNumber sets the display account number.
func (b *Builder) WithAccountNumber(number string) *Builder {
	b.accountNumber = number
	return b
}

// WithBalance sets the initial balance.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// Build returns the Account.
func (b *Builder) Build() *Account {
	return &Account{
		ID:            b.id,
		AccountNumber: b.accountNumber,
		Balance:       b.balance,
	}
}

// Deposit adds amount to the balance and returns the DEPOSIT transaction
// describing the change. The amount is applied as given. Amounts or resulting
// balances outside the storable range return domain.ErrAmountOutOfRange and
// leave the account untouched.
func (a *Account) Deposit(amount decimal.Decimal, at time.Time) (*Transaction, error) {
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}
	balance := a.Balance.Add(amount)
	if err := CheckAmount(balance); err != nil {
		return nil, err
	}
	a.Balance = balance
	return newTransaction(a, amount, TypeDeposit, at), nil
}

// Withdraw subtracts amount from the balance and returns the WITHDRAW
// transaction describing the change. The transaction records amount as
// given, not negated. When the balance is lower than amount it returns
// domain.ErrInsufficientFunds and leaves the account untouched.
func (a *Account) Withdraw(amount decimal.Decimal, at time.Time) (*Transaction, error) {
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}
	if a.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	balance := a.Balance.Sub(amount)
	if err := CheckAmount(balance); err != nil {
		return nil, err
	}
	a.Balance = balance
	return newTransaction(a, amount, TypeWithdraw, at), nil
}
