package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a testify mock for persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a mock whose expectations are asserted on cleanup
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByIDForUser(ctx context.Context, id, userID uint64) (*entity.Transaction, error) {
	args := m.Called(ctx, id, userID)
	var tx *entity.Transaction
	if v := args.Get(0); v != nil {
		tx = v.(*entity.Transaction)
	}
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) UpdateFeedback(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	args := m.Called(ctx, userID, filter)
	var page *entity.TransactionPage
	if v := args.Get(0); v != nil {
		page = v.(*entity.TransactionPage)
	}
	return page, args.Error(1)
}

func (m *MockTransactionRepository) StatsByUser(ctx context.Context, userID uint64) (*entity.TransactionStats, error) {
	args := m.Called(ctx, userID)
	return statsArg(args), args.Error(1)
}

func (m *MockTransactionRepository) Stats(ctx context.Context) (*entity.TransactionStats, error) {
	args := m.Called(ctx)
	return statsArg(args), args.Error(1)
}

func statsArg(args mock.Arguments) *entity.TransactionStats {
	if v := args.Get(0); v != nil {
		return v.(*entity.TransactionStats)
	}
	return nil
}

var _ persistence.TransactionRepository = (*MockTransactionRepository)(nil)
