package account

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
)

// Repository defines data access for accounts.
type Repository interface {
	// Get retrieves an account by its ID. Returns domain.ErrAccountNotFound when absent.
	Get(ctx context.Context, id int64) (*account.Account, error)

	// GetForUpdate retrieves an account by its ID and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*account.Account, error)

	// Create inserts a new account and assigns its ID.
	Create(ctx context.Context, a *account.Account) error

	// Update persists the account balance.
	Update(ctx context.Context, a *account.Account) error
}
