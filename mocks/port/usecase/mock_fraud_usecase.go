package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockFraudUseCase is a testify mock for usecase.FraudUseCase
type MockFraudUseCase struct {
	mock.Mock
}

// NewMockFraudUseCase creates a mock whose expectations are asserted on cleanup
func NewMockFraudUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFraudUseCase {
	m := &MockFraudUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFraudUseCase) Predict(ctx context.Context, userID uint64, input entity.TransactionInput) (*usecase.PredictionResult, error) {
	args := m.Called(ctx, userID, input)
	var result *usecase.PredictionResult
	if v := args.Get(0); v != nil {
		result = v.(*usecase.PredictionResult)
	}
	return result, args.Error(1)
}

func (m *MockFraudUseCase) SubmitFeedback(ctx context.Context, userID, transactionID uint64, correct bool, notes *string) (*entity.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, correct, notes)
	var tx *entity.Transaction
	if v := args.Get(0); v != nil {
		tx = v.(*entity.Transaction)
	}
	return tx, args.Error(1)
}

var _ usecase.FraudUseCase = (*MockFraudUseCase)(nil)
