package mocks

import (
	"context"

	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository/account"
	"github.com/amirasaad/ledger/pkg/repository/transaction"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock of account.Repository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository whose expectations are asserted on cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Get(ctx context.Context, id int64) (*domainaccount.Account, error) {
	ret := m.Called(ctx, id)
	a, _ := ret.Get(0).(*domainaccount.Account)
	return a, ret.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id int64) (*domainaccount.Account, error) {
	ret := m.Called(ctx, id)
	a, _ := ret.Get(0).(*domainaccount.Account)
	return a, ret.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, a *domainaccount.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *domainaccount.Account) error {
	return m.Called(ctx, a).Error(0)
}

var _ account.Repository = (*MockAccountRepository)(nil)

// MockTransactionRepository is a mock of transaction.Repository.
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a MockTransactionRepository whose expectations are asserted on cleanup.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domainaccount.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domainaccount.Transaction, error) {
	ret := m.Called(ctx, accountID)
	txs, _ := ret.Get(0).([]*domainaccount.Transaction)
	return txs, ret.Error(1)
}

var _ transaction.Repository = (*MockTransactionRepository)(nil)
