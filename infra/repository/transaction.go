package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
	repotransaction "github.com/amirasaad/ledger/pkg/repository/transaction"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository using the provided *gorm.DB.
func NewTransactionRepository(db *gorm.DB) repotransaction.Repository {
	return &transactionRepository{db: db}
}

// Create implements transaction.Repository.
func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	m := Transaction{
		Date:            tx.Date,
		Amount:          NewNumeric(tx.Amount),
		Balance:         NewNumeric(tx.Balance),
		TransactionType: tx.Type.String(),
		AccountID:       tx.AccountID,
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	}); err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// ListByAccount implements transaction.Repository.
func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID int64,
) ([]*account.Transaction, error) {
	var rows []Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		result = append(result, mapTransactionModelToDomain(&rows[i]))
	}
	return result, nil
}

func mapTransactionModelToDomain(m *Transaction) *account.Transaction {
	return account.NewTransactionFromData(
		m.ID,
		m.AccountID,
		m.Date,
		m.Amount.Decimal,
		m.Balance.Decimal,
		account.TransactionType(m.TransactionType),
	)
}
