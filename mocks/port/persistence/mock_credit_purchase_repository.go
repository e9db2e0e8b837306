package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockCreditPurchaseRepository is a testify mock for persistence.CreditPurchaseRepository
type MockCreditPurchaseRepository struct {
	mock.Mock
}

// NewMockCreditPurchaseRepository creates a mock whose expectations are asserted on cleanup
func NewMockCreditPurchaseRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCreditPurchaseRepository {
	m := &MockCreditPurchaseRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditPurchaseRepository) Create(ctx context.Context, purchase *entity.CreditPurchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockCreditPurchaseRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error) {
	args := m.Called(ctx, userID)
	var purchases []*entity.CreditPurchase
	if v := args.Get(0); v != nil {
		purchases = v.([]*entity.CreditPurchase)
	}
	return purchases, args.Error(1)
}

var _ persistence.CreditPurchaseRepository = (*MockCreditPurchaseRepository)(nil)
