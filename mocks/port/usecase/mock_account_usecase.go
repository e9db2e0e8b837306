package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAccountUseCase is a testify mock for usecase.AccountUseCase
type MockAccountUseCase struct {
	mock.Mock
}

// NewMockAccountUseCase creates a mock whose expectations are asserted on cleanup
func NewMockAccountUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountUseCase {
	m := &MockAccountUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountUseCase) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.AuthResult, error) {
	args := m.Called(ctx, req)
	return authArg(args), args.Error(1)
}

func (m *MockAccountUseCase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return authArg(args), args.Error(1)
}

func (m *MockAccountUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	return userArg(args), args.Error(1)
}

func (m *MockAccountUseCase) Profile(ctx context.Context, userID uint64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	return userArg(args), args.Error(1)
}

func (m *MockAccountUseCase) Stats(ctx context.Context, userID uint64) (*usecase.UserStats, error) {
	args := m.Called(ctx, userID)
	var stats *usecase.UserStats
	if v := args.Get(0); v != nil {
		stats = v.(*usecase.UserStats)
	}
	return stats, args.Error(1)
}

func (m *MockAccountUseCase) Transactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	args := m.Called(ctx, userID, filter)
	var page *entity.TransactionPage
	if v := args.Get(0); v != nil {
		page = v.(*entity.TransactionPage)
	}
	return page, args.Error(1)
}

func authArg(args mock.Arguments) *usecase.AuthResult {
	if v := args.Get(0); v != nil {
		return v.(*usecase.AuthResult)
	}
	return nil
}

func userArg(args mock.Arguments) *entity.User {
	if v := args.Get(0); v != nil {
		return v.(*entity.User)
	}
	return nil
}

var _ usecase.AccountUseCase = (*MockAccountUseCase)(nil)
