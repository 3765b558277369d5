package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
	repoaccount "github.com/amirasaad/ledger/pkg/repository/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository using the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) repoaccount.Repository {
	return &accountRepository{db: db}
}

// Get implements account.Repository.
func (r *accountRepository) Get(ctx context.Context, id int64) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate implements account.Repository.
func (r *accountRepository) GetForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *accountRepository) get(db *gorm.DB, id int64) (*account.Account, error) {
	var m Account
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, mapAccountError(err)
	}
	return mapAccountModelToDomain(&m), nil
}

// Create implements account.Repository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := Account{
		Balance:       NewNumeric(a.Balance),
		AccountNumber: a.AccountNumber,
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	}); err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

// Update implements account.Repository.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&Account{}).
			Where("id = ?", a.ID).
			Update("balance", NewNumeric(a.Balance)).Error
	})
}

func mapAccountModelToDomain(m *Account) *account.Account {
	return account.New().
		WithID(m.ID).
		WithAccountNumber(m.AccountNumber).
		WithBalance(m.Balance.Decimal).
		Build()
}
