package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLedgerUseCase is a testify mock for usecase.LedgerUseCase
type MockLedgerUseCase struct {
	mock.Mock
}

// NewMockLedgerUseCase creates a mock whose expectations are asserted on cleanup
func NewMockLedgerUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLedgerUseCase {
	m := &MockLedgerUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerUseCase) CheckAndReset(ctx context.Context, userID uint64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	return userArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) ResetIfDue(ctx context.Context, userID uint64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	return userArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) Purchase(ctx context.Context, userID uint64, amount decimal.Decimal) (*usecase.PurchaseResult, error) {
	args := m.Called(ctx, userID, amount)
	var result *usecase.PurchaseResult
	if v := args.Get(0); v != nil {
		result = v.(*usecase.PurchaseResult)
	}
	return result, args.Error(1)
}

func (m *MockLedgerUseCase) Balance(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) History(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error) {
	args := m.Called(ctx, userID)
	var purchases []*entity.CreditPurchase
	if v := args.Get(0); v != nil {
		purchases = v.([]*entity.CreditPurchase)
	}
	return purchases, args.Error(1)
}

var _ usecase.LedgerUseCase = (*MockLedgerUseCase)(nil)
