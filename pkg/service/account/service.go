// Package account implements the ledger use cases: deposits, withdrawals,
// account statements and account creation.
//
// Every balance change runs inside a single unit of work that locks the
// account row, appends the transaction and persists the new balance, so a
// statement never disagrees with the stored balance.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides the ledger operations on accounts.
type Service struct {
	uow           repository.UnitOfWork
	bus           eventbus.Bus
	logger        *slog.Logger
	locker        *keyedLocker
	strictAmounts bool
	now           func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithStrictAmounts rejects zero and negative amounts with domain.ErrInvalidAmount.
func WithStrictAmounts(strict bool) Option {
	return func(s *Service) { s.strictAmounts = strict }
}

// WithClock overrides the time source used to date transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service. bus may be nil, in which case no events are emitted.
func New(
	bus eventbus.Bus,
	uow repository.UnitOfWork,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		uow:    uow,
		bus:    bus,
		logger: logger,
		locker: newKeyedLocker(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deposit adds amount to the account balance, records a DEPOSIT transaction
// and returns the updated account.
func (s *Service) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.AccountRead, error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())
	logger.Info("Deposit started")

	a, tx, err := s.apply(ctx, accountID, amount, func(a *account.Account, at time.Time) (*account.Transaction, error) {
		return a.Deposit(amount, at)
	})
	if err != nil {
		logger.Error("Deposit failed", "error", err)
		return nil, err
	}
	logger.Info("Deposit successful", "transactionID", tx.ID, "balance", tx.Balance.String())
	read := toAccountRead(a)
	return &read, nil
}

// Withdraw subtracts amount from the account balance, records a WITHDRAW
// transaction and returns the updated account. It returns
// domain.ErrInsufficientFunds when the balance is lower than amount.
func (s *Service) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.AccountRead, error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())
	logger.Info("Withdraw started")

	a, tx, err := s.apply(ctx, accountID, amount, func(a *account.Account, at time.Time) (*account.Transaction, error) {
		return a.Withdraw(amount, at)
	})
	if err != nil {
		logger.Error("Withdraw failed", "error", err)
		return nil, err
	}
	logger.Info("Withdraw successful", "transactionID", tx.ID, "balance", tx.Balance.String())
	read := toAccountRead(a)
	return &read, nil
}

type mutation func(a *account.Account, at time.Time) (*account.Transaction, error)

// apply runs mutate against the locked account and persists the resulting
// transaction and balance atomically. The TransactionRecorded event is only
// emitted once the unit of work has committed.
func (s *Service) apply(
	ctx context.Context,
	accountID int64,
	amount decimal.Decimal,
	mutate mutation,
) (acc *account.Account, tx *account.Transaction, err error) {
	if s.strictAmounts && !amount.IsPositive() {
		return nil, nil, domain.ErrInvalidAmount
	}
	if err = account.CheckAmount(amount); err != nil {
		return nil, nil, err
	}

	unlock := s.locker.Lock(accountID)
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		a, err := accRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		t, err := mutate(a, s.now().UTC())
		if err != nil {
			return err
		}
		if err = txRepo.Create(ctx, t); err != nil {
			return err
		}
		if err = accRepo.Update(ctx, a); err != nil {
			return err
		}
		acc, tx = a, t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.emit(ctx, account.NewTransactionRecorded(tx))
	return acc, tx, nil
}

func (s *Service) emit(ctx context.Context, event eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Warn("failed to emit event", "type", event.EventType(), "error", err)
	}
}

// GetAccountStatement returns every transaction of the account in the order
// it was recorded. An account without transactions yields an empty slice.
func (s *Service) GetAccountStatement(ctx context.Context, accountID int64) (statement []*dto.TransactionRead, err error) {
	logger := s.logger.With("accountID", accountID)
	logger.Info("GetAccountStatement started")

	var (
		a   *account.Account
		txs []*account.Transaction
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if a, err = accRepo.Get(ctx, accountID); err != nil {
			return err
		}
		txs, err = txRepo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		logger.Error("GetAccountStatement failed", "error", err)
		return nil, err
	}

	owner := toAccountRead(a)
	statement = make([]*dto.TransactionRead, 0, len(txs))
	for _, t := range txs {
		statement = append(statement, &dto.TransactionRead{
			ID:              t.ID,
			Date:            t.Date,
			Amount:          t.Amount,
			Balance:         t.Balance,
			TransactionType: t.Type.String(),
			Account:         owner,
		})
	}
	logger.Info("GetAccountStatement successful", "count", len(statement))
	return statement, nil
}

// GetAccount returns the account with its current balance.
func (s *Service) GetAccount(ctx context.Context, accountID int64) (*dto.AccountRead, error) {
	logger := s.logger.With("accountID", accountID)
	logger.Debug("GetAccount started")

	repo, err := s.uow.AccountRepository()
	if err != nil {
		logger.Error("GetAccount failed: AccountRepository error", "error", err)
		return nil, err
	}
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		logger.Error("GetAccount failed", "error", err)
		return nil, err
	}
	read := toAccountRead(a)
	return &read, nil
}

// CreateAccount opens a new account. An empty account number is replaced by
// a generated one.
func (s *Service) CreateAccount(ctx context.Context, in dto.AccountCreate) (*dto.AccountRead, error) {
	number := strings.TrimSpace(in.AccountNumber)
	if number == "" {
		number = NewAccountNumber()
	}
	logger := s.logger.With("accountNumber", number)
	logger.Info("CreateAccount started")
	if err := account.CheckAmount(in.Balance); err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return nil, err
	}

	a := account.New().
		WithAccountNumber(number).
		WithBalance(in.Balance).
		Build()

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, a)
	})
	if err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return nil, err
	}
	logger.Info("CreateAccount successful", "accountID", a.ID)
	read := toAccountRead(a)
	return &read, nil
}

// NewAccountNumber generates an account number of the form ACC-XXXXXXXXXXXX.
func NewAccountNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("ACC-%s", strings.ToUpper(hex[:12]))
}

func toAccountRead(a *account.Account) dto.AccountRead {
	return dto.AccountRead{
		ID:            a.ID,
		Balance:       a.Balance,
		AccountNumber: a.AccountNumber,
	}
}
