package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/ledger/pkg/repository"
	repoaccount "github.com/amirasaad/ledger/pkg/repository/account"
	repotransaction "github.com/amirasaad/ledger/pkg/repository/transaction"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Outside Do, repositories run on the root connection; inside Do they share tx.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repoaccount.Repository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewAccountRepository(db)
			},
			reflect.TypeOf((*repotransaction.Repository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewTransactionRepository(db)
			},
		},
	}
}

// Do runs fn in a database transaction. Returning an error from fn rolls it back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for repoType, bound to the
// current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// AccountRepository returns the account repository for the current session.
func (u *UoW) AccountRepository() (repoaccount.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repoaccount.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repoaccount.Repository), nil
}

// TransactionRepository returns the transaction repository for the current session.
func (u *UoW) TransactionRepository() (repotransaction.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repotransaction.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repotransaction.Repository), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
