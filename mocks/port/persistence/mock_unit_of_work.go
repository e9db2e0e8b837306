package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a testify mock for persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork whose expectations are asserted on cleanup
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithRepositories wires the repository getters and a pass-through transaction
// for any context, so use cases can be tested against repository mocks alone
func (m *MockUnitOfWork) WithRepositories(
	users persistence.UserRepository,
	purchases persistence.CreditPurchaseRepository,
	transactions persistence.TransactionRepository,
) *MockUnitOfWork {
	m.On("Begin", mock.Anything).Maybe().Return(func(ctx context.Context) context.Context { return ctx }, nil)
	m.On("Commit", mock.Anything).Maybe().Return(nil)
	m.On("Rollback", mock.Anything).Maybe().Return(nil)
	m.On("GetUserRepository", mock.Anything).Maybe().Return(users)
	m.On("GetCreditPurchaseRepository", mock.Anything).Maybe().Return(purchases)
	m.On("GetTransactionRepository", mock.Anything).Maybe().Return(transactions)
	return m
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	switch v := args.Get(0).(type) {
	case func(context.Context) context.Context:
		return v(ctx), args.Error(1)
	case context.Context:
		return v, args.Error(1)
	default:
		return ctx, args.Error(1)
	}
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(persistence.UserRepository)
	}
	return nil
}

func (m *MockUnitOfWork) GetCreditPurchaseRepository(ctx context.Context) persistence.CreditPurchaseRepository {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(persistence.CreditPurchaseRepository)
	}
	return nil
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(persistence.TransactionRepository)
	}
	return nil
}

var _ persistence.UnitOfWork = (*MockUnitOfWork)(nil)
