package usecase

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAdminUseCase is a testify mock for usecase.AdminUseCase
type MockAdminUseCase struct {
	mock.Mock
}

// NewMockAdminUseCase creates a mock whose expectations are asserted on cleanup
func NewMockAdminUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminUseCase {
	m := &MockAdminUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAdminUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	var users []*entity.User
	if v := args.Get(0); v != nil {
		users = v.([]*entity.User)
	}
	return users, args.Error(1)
}

func (m *MockAdminUseCase) SetCredits(ctx context.Context, userID uint64, credits int64) (*entity.User, error) {
	args := m.Called(ctx, userID, credits)
	return userArg(args), args.Error(1)
}

func (m *MockAdminUseCase) DeleteUser(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAdminUseCase) Stats(ctx context.Context) (*usecase.SystemStats, error) {
	args := m.Called(ctx)
	var stats *usecase.SystemStats
	if v := args.Get(0); v != nil {
		stats = v.(*usecase.SystemStats)
	}
	return stats, args.Error(1)
}

var _ usecase.AdminUseCase = (*MockAdminUseCase)(nil)
