package transaction

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
)

// Repository defines data access for the append-only transaction log.
type Repository interface {
	// Create appends a transaction and assigns its ID.
	Create(ctx context.Context, tx *account.Transaction) error

	// ListByAccount lists an account's transactions in insertion order.
	ListByAccount(ctx context.Context, accountID int64) ([]*account.Transaction, error)
}
