package account

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
	mockcore "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/fraud-scoring/mocks/port/persistence"
	mocksecurity "github.com/amirhossein-jamali/fraud-scoring/mocks/port/security"
	mockusecase "github.com/amirhossein-jamali/fraud-scoring/mocks/port/usecase"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type accountFixture struct {
	service      *Service
	users        *mockpersistence.MockUserRepository
	transactions *mockpersistence.MockTransactionRepository
	ledger       *mockusecase.MockLedgerUseCase
	tokens       *mocksecurity.MockTokenIssuer
	hasher       *mocksecurity.MockPasswordHasher
}

func newAccountFixture(t *testing.T) *accountFixture {
	users := mockpersistence.NewMockUserRepository(t)
	purchases := mockpersistence.NewMockCreditPurchaseRepository(t)
	transactions := mockpersistence.NewMockTransactionRepository(t)
	uow := mockpersistence.NewMockUnitOfWork(t).WithRepositories(users, purchases, transactions)
	ledger := mockusecase.NewMockLedgerUseCase(t)
	tokens := mocksecurity.NewMockTokenIssuer(t)
	hasher := mocksecurity.NewMockPasswordHasher(t)
	logger := mockcore.NewMockLogger(t).AllowAll()
	clock := mockcore.NewMockTimeProvider(t).Fixed(fixedNow)

	return &accountFixture{
		service:      NewAccountService(uow, ledger, tokens, hasher, clock, logger),
		users:        users,
		transactions: transactions,
		ledger:       ledger,
		tokens:       tokens,
		hasher:       hasher,
	}
}

func registerRequest() usecase.RegisterRequest {
	return usecase.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Username: "ada",
		Password: "secret123",
	}
}

func TestAccountService_Register(t *testing.T) {
	expiresAt := fixedNow.Add(24 * time.Hour)

	t.Run("New account gets the default allowance and a token", func(t *testing.T) {
		f := newAccountFixture(t)

		f.hasher.On("Hash", "secret123").Return("bcrypt-hash", nil).Once()
		f.users.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil).Once()
		f.users.On("ExistsByUsername", mock.Anything, "ada").Return(false, nil).Once()
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 9 }).
			Return(nil).Once()
		f.tokens.On("Issue", "9").Return("signed.jwt.token", expiresAt, nil).Once()

		result, err := f.service.Register(context.Background(), registerRequest())

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", result.Token)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Equal(t, expiresAt, result.ExpiresAt)
		assert.Equal(t, uint64(9), result.User.ID)
		assert.Equal(t, "ada@example.com", result.User.Email)
		assert.Equal(t, entity.DefaultCredits, result.User.Credits())
		assert.Equal(t, fixedNow, result.User.LastCreditReset)
		assert.Equal(t, "bcrypt-hash", result.User.PasswordHash)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		f := newAccountFixture(t)

		f.hasher.On("Hash", mock.Anything).Return("bcrypt-hash", nil).Once()
		f.users.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil).Once()

		_, err := f.service.Register(context.Background(), registerRequest())

		assert.ErrorIs(t, err, errs.ErrEmailTaken)
		assert.True(t, errs.IsConflictError(err))
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		f := newAccountFixture(t)

		f.hasher.On("Hash", mock.Anything).Return("bcrypt-hash", nil).Once()
		f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.users.On("ExistsByUsername", mock.Anything, "ada").Return(true, nil).Once()

		_, err := f.service.Register(context.Background(), registerRequest())

		assert.ErrorIs(t, err, errs.ErrUsernameTaken)
		f.tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("Invalid fields are rejected before hashing", func(t *testing.T) {
		f := newAccountFixture(t)

		for name, mutate := range map[string]func(r *usecase.RegisterRequest){
			"blank name":     func(r *usecase.RegisterRequest) { r.Name = " " },
			"bad email":      func(r *usecase.RegisterRequest) { r.Email = "not-an-email" },
			"blank username": func(r *usecase.RegisterRequest) { r.Username = "" },
			"short password": func(r *usecase.RegisterRequest) { r.Password = "abc" },
		} {
			req := registerRequest()
			mutate(&req)
			_, err := f.service.Register(context.Background(), req)
			assert.ErrorIs(t, err, errs.ErrInvalidInput, name)
		}
		f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})
}

func TestAccountService_Login(t *testing.T) {
	user := &entity.User{ID: 3, Email: "ada@example.com", PasswordHash: "bcrypt-hash"}

	t.Run("Valid credentials", func(t *testing.T) {
		f := newAccountFixture(t)

		f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "bcrypt-hash", "secret123").Return(nil).Once()
		f.tokens.On("Issue", "3").Return("tok", fixedNow.Add(time.Hour), nil).Once()

		result, err := f.service.Login(context.Background(), " ADA@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "tok", result.Token)
		assert.Same(t, user, result.User)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newAccountFixture(t)

		f.users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "bcrypt-hash", "nope").Return(errs.ErrInvalidCredentials).Once()

		_, err := f.service.Login(context.Background(), "ada@example.com", "nope")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.True(t, errs.IsUnauthorizedError(err))
	})

	t.Run("Unknown email looks the same as a wrong password", func(t *testing.T) {
		f := newAccountFixture(t)

		f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.service.Login(context.Background(), "ghost@example.com", "secret123")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	user := &entity.User{ID: 3}

	t.Run("Valid token resolves the user", func(t *testing.T) {
		f := newAccountFixture(t)
		f.tokens.On("Verify", "good").Return("3", nil).Once()
		f.users.On("GetByID", mock.Anything, uint64(3)).Return(user, nil).Once()

		got, err := f.service.Authenticate(context.Background(), "good")

		require.NoError(t, err)
		assert.Same(t, user, got)
	})

	t.Run("Every failure is unauthorized", func(t *testing.T) {
		f := newAccountFixture(t)
		f.tokens.On("Verify", "expired").Return("", errs.ErrUnauthorized).Once()
		f.tokens.On("Verify", "garbage-subject").Return("abc", nil).Once()
		f.tokens.On("Verify", "zero-subject").Return("0", nil).Once()
		f.tokens.On("Verify", "deleted-user").Return("8", nil).Once()
		f.tokens.On("Verify", "db-down").Return("9", nil).Once()
		f.users.On("GetByID", mock.Anything, uint64(8)).Return(nil, errs.ErrUserNotFound).Once()
		f.users.On("GetByID", mock.Anything, uint64(9)).Return(nil, errors.New("connection refused")).Once()

		for _, token := range []string{"expired", "garbage-subject", "zero-subject", "deleted-user", "db-down"} {
			got, err := f.service.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, errs.ErrUnauthorized, token)
			assert.Nil(t, got, token)
		}
	})
}

func TestAccountService_Profile(t *testing.T) {
	f := newAccountFixture(t)
	user := &entity.User{ID: 3}
	f.ledger.On("CheckAndReset", mock.Anything, uint64(3)).Return(user, nil).Once()

	got, err := f.service.Profile(context.Background(), 3)

	require.NoError(t, err)
	assert.Same(t, user, got)
}

func TestAccountService_Stats(t *testing.T) {
	f := newAccountFixture(t)
	user := &entity.User{ID: 3}
	require.NoError(t, user.SetCredits(70, fixedNow))

	f.users.On("GetByID", mock.Anything, uint64(3)).Return(user, nil).Once()
	f.transactions.On("StatsByUser", mock.Anything, uint64(3)).Return(&entity.TransactionStats{
		Total:              3,
		Fraudulent:         1,
		AverageProbability: 0.41666,
	}, nil).Once()

	stats, err := f.service.Stats(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, &usecase.UserStats{
		TotalTransactions:      3,
		FraudulentTransactions: 1,
		RemainingCredits:       70,
		AverageProbability:     0.417,
	}, stats)
}

func TestAccountService_Transactions(t *testing.T) {
	t.Run("Pagination is clamped before querying", func(t *testing.T) {
		f := newAccountFixture(t)
		page := &entity.TransactionPage{Total: 0, Page: 1, PerPage: entity.MaxPerPage}

		f.transactions.On("ListByUser", mock.Anything, uint64(3), entity.TransactionFilter{
			Merchant: "amazon",
			Page:     1,
			PerPage:  entity.MaxPerPage,
		}).Return(page, nil).Once()

		got, err := f.service.Transactions(context.Background(), 3, entity.TransactionFilter{Merchant: "amazon", PerPage: 1000})

		require.NoError(t, err)
		assert.Same(t, page, got)
	})

	t.Run("Inverted date range is invalid", func(t *testing.T) {
		f := newAccountFixture(t)
		start := fixedNow
		end := fixedNow.Add(-time.Hour)

		_, err := f.service.Transactions(context.Background(), 3, entity.TransactionFilter{StartDate: &start, EndDate: &end})

		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}
