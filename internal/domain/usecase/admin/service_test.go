package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/usecase/ledger"
	mockcore "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/fraud-scoring/mocks/port/persistence"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type adminFixture struct {
	service      *Service
	users        *mockpersistence.MockUserRepository
	transactions *mockpersistence.MockTransactionRepository
}

func newAdminFixture(t *testing.T) *adminFixture {
	users := mockpersistence.NewMockUserRepository(t)
	purchases := mockpersistence.NewMockCreditPurchaseRepository(t)
	transactions := mockpersistence.NewMockTransactionRepository(t)
	uow := mockpersistence.NewMockUnitOfWork(t).WithRepositories(users, purchases, transactions)
	logger := mockcore.NewMockLogger(t).AllowAll()
	clock := mockcore.NewMockTimeProvider(t).Fixed(fixedNow)

	sequencer := ledger.NewSequencer(logger, time.Minute)
	t.Cleanup(func() { _ = sequencer.Shutdown(context.Background()) })

	return &adminFixture{
		service:      NewAdminService(uow, sequencer, clock, logger),
		users:        users,
		transactions: transactions,
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	f := newAdminFixture(t)
	list := []*entity.User{{ID: 1}, {ID: 2}}
	f.users.On("List", mock.Anything).Return(list, nil).Once()

	got, err := f.service.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestAdminService_SetCredits(t *testing.T) {
	t.Run("Balance is overwritten", func(t *testing.T) {
		f := newAdminFixture(t)
		user := &entity.User{ID: 4}
		require.NoError(t, user.SetCredits(15, fixedNow.Add(-time.Hour)))

		f.users.On("GetByIDForUpdate", mock.Anything, uint64(4)).Return(user, nil).Once()
		f.users.On("Update", mock.Anything, user).Return(nil).Once()

		got, err := f.service.SetCredits(context.Background(), 4, 500)

		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Credits())
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("Zero is allowed", func(t *testing.T) {
		f := newAdminFixture(t)
		user := &entity.User{ID: 4}

		f.users.On("GetByIDForUpdate", mock.Anything, uint64(4)).Return(user, nil).Once()
		f.users.On("Update", mock.Anything, user).Return(nil).Once()

		got, err := f.service.SetCredits(context.Background(), 4, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Credits())
	})

	t.Run("Negative credits", func(t *testing.T) {
		f := newAdminFixture(t)

		_, err := f.service.SetCredits(context.Background(), 4, -1)

		assert.ErrorIs(t, err, errs.ErrNegativeCredits)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Missing user", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(404)).Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.service.SetCredits(context.Background(), 404, 10)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	t.Run("Regular user is deleted", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(4)).Return(&entity.User{ID: 4}, nil).Once()
		f.users.On("Delete", mock.Anything, uint64(4)).Return(nil).Once()

		require.NoError(t, f.service.DeleteUser(context.Background(), 4))
	})

	t.Run("Admin target is refused", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(&entity.User{ID: 1, IsAdmin: true}, nil).Once()

		err := f.service.DeleteUser(context.Background(), 1)

		assert.ErrorIs(t, err, errs.ErrAdminDeletion)
		assert.True(t, errs.IsForbiddenError(err))
		f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Missing user", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(404)).Return(nil, errs.ErrUserNotFound).Once()

		err := f.service.DeleteUser(context.Background(), 404)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestAdminService_Stats(t *testing.T) {
	t.Run("Counters are combined", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("Count", mock.Anything).Return(int64(3), nil).Once()
		f.transactions.On("Stats", mock.Anything).Return(&entity.TransactionStats{Total: 10, Fraudulent: 2}, nil).Once()

		stats, err := f.service.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, &usecase.SystemStats{TotalUsers: 3, TotalTransactions: 10, FraudTransactions: 2}, stats)
	})

	t.Run("Repository error is returned", func(t *testing.T) {
		f := newAdminFixture(t)
		dbErr := errors.New("timeout")
		f.users.On("Count", mock.Anything).Return(int64(0), dbErr).Once()

		_, err := f.service.Stats(context.Background())

		assert.ErrorIs(t, err, dbErr)
	})
}
