package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/repository/account"
	"github.com/amirasaad/ledger/pkg/repository/transaction"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock of repository.UnitOfWork.
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork whose expectations are asserted on cleanup.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Do provides a mock function. A return value of type
// func(context.Context, func(repository.UnitOfWork) error) error is invoked
// in place of a static error.
func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	ret := m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(repository.UnitOfWork) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// GetRepository provides a mock function.
func (m *MockUnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	ret := m.Called(repoType)
	return ret.Get(0), ret.Error(1)
}

// AccountRepository provides a mock function.
func (m *MockUnitOfWork) AccountRepository() (account.Repository, error) {
	ret := m.Called()
	repo, _ := ret.Get(0).(account.Repository)
	return repo, ret.Error(1)
}

// TransactionRepository provides a mock function.
func (m *MockUnitOfWork) TransactionRepository() (transaction.Repository, error) {
	ret := m.Called()
	repo, _ := ret.Get(0).(transaction.Repository)
	return repo, ret.Error(1)
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)
