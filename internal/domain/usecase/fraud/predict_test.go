package fraud

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
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
	mockcore "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	mockml "github.com/amirhossein-jamali/fraud-scoring/mocks/port/ml"
	mockpersistence "github.com/amirhossein-jamali/fraud-scoring/mocks/port/persistence"
	mockusecase "github.com/amirhossein-jamali/fraud-scoring/mocks/port/usecase"
)

// inlineSequencer runs work on the caller's goroutine
type inlineSequencer struct{ calls int }

func (s *inlineSequencer) Do(ctx context.Context, _ uint64, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type fraudFixture struct {
	service      *Service
	users        *mockpersistence.MockUserRepository
	transactions *mockpersistence.MockTransactionRepository
	uow          *mockpersistence.MockUnitOfWork
	ledger       *mockusecase.MockLedgerUseCase
	classifier   *mockml.MockClassifier
	metrics      *mockcore.MockMetricsRecorder
	sequencer    *inlineSequencer
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newFraudFixture(t *testing.T) *fraudFixture {
	users := mockpersistence.NewMockUserRepository(t)
	purchases := mockpersistence.NewMockCreditPurchaseRepository(t)
	transactions := mockpersistence.NewMockTransactionRepository(t)
	uow := mockpersistence.NewMockUnitOfWork(t).WithRepositories(users, purchases, transactions)
	ledger := mockusecase.NewMockLedgerUseCase(t)
	classifier := mockml.NewMockClassifier(t)
	classifier.On("Mode").Maybe().Return(ml.ModeFallback)
	metrics := mockcore.NewMockMetricsRecorder(t)
	logger := mockcore.NewMockLogger(t).AllowAll()
	clock := mockcore.NewMockTimeProvider(t).Fixed(fixedNow)
	sequencer := &inlineSequencer{}

	return &fraudFixture{
		service:      NewFraudService(uow, ledger, sequencer, classifier, clock, logger, metrics),
		users:        users,
		transactions: transactions,
		uow:          uow,
		ledger:       ledger,
		classifier:   classifier,
		metrics:      metrics,
		sequencer:    sequencer,
	}
}

func userWithCredits(t *testing.T, credits int64) *entity.User {
	u, err := entity.NewUser("Ada", "ada@example.com", "ada", "hash", fixedNow)
	require.NoError(t, err)
	u.ID = 42
	require.NoError(t, u.SetCredits(credits, fixedNow))
	return u
}

func validInput() entity.TransactionInput {
	return entity.TransactionInput{
		Amount:   250,
		Merchant: " Amazon ",
		Category: "Shopping",
		Hour:     14,
		UserAge:  35,
	}
}

func TestFraudService_Predict(t *testing.T) {
	t.Run("Successful prediction debits exactly once", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 100)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.classifier.On("Predict", mock.Anything, entity.FeatureRecord{
			Amount: 250, Merchant: "amazon", Category: entity.CategoryShopping, Hour: 14, UserAge: 35,
		}).Return(entity.Score{Probability: 0.12345, IsFraud: false}, nil).Once()
		f.transactions.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Transaction).ID = 11 }).
			Return(nil).Once()
		f.users.On("Update", mock.Anything, user).Return(nil).Once()
		f.metrics.On("PredictionScored", "low", false).Return().Once()

		result, err := f.service.Predict(context.Background(), 42, validInput())

		require.NoError(t, err)
		assert.Equal(t, int64(90), result.RemainingCredits)
		assert.Equal(t, int64(90), user.Credits())
		assert.Equal(t, uint64(11), result.Transaction.ID)
		assert.Equal(t, entity.RiskLow, result.Transaction.RiskLevel)
		assert.Equal(t, "amazon", result.Transaction.Merchant)
		assert.Equal(t, validInput(), result.Submitted)
		assert.Equal(t, fixedNow, result.Transaction.CreatedAt)
		assert.Equal(t, 1, f.sequencer.calls)
	})

	t.Run("Ten credits is enough and leaves zero", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 10)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.classifier.On("Predict", mock.Anything, mock.Anything).Return(entity.Score{Probability: 0.9, IsFraud: true}, nil).Once()
		f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.users.On("Update", mock.Anything, user).Return(nil).Once()
		f.metrics.On("PredictionScored", "high", true).Return().Once()

		result, err := f.service.Predict(context.Background(), 42, validInput())

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.RemainingCredits)
		assert.True(t, result.Transaction.IsFraud)
	})

	t.Run("Insufficient credits is reported before validation", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 9)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.metrics.On("PredictionFailed", "insufficient_credits").Return().Once()

		input := validInput()
		input.Category = "gambling"
		_, err := f.service.Predict(context.Background(), 42, input)

		require.Error(t, err)
		assert.True(t, errs.IsInsufficientCreditsError(err))
		var detail *errs.InsufficientCreditsError
		require.ErrorAs(t, err, &detail)
		assert.Equal(t, int64(9), detail.Available)
		assert.Equal(t, int64(9), user.Credits())
		f.classifier.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("Invalid category does not debit", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 50)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.metrics.On("PredictionFailed", "invalid_input").Return().Once()

		input := validInput()
		input.Category = "gambling"
		_, err := f.service.Predict(context.Background(), 42, input)

		assert.ErrorIs(t, err, errs.ErrInvalidCategory)
		assert.Equal(t, int64(50), user.Credits())
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Classifier failure rolls back without a debit or record", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 50)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.classifier.On("Predict", mock.Anything, mock.Anything).
			Return(entity.Score{}, errors.New("model exploded")).Once()
		f.metrics.On("PredictionFailed", "classifier").Return().Once()

		_, err := f.service.Predict(context.Background(), 42, validInput())

		assert.ErrorIs(t, err, errs.ErrClassifierFailure)
		assert.Equal(t, int64(50), user.Credits())
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unknown feature from the classifier is invalid input", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 50)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.classifier.On("Predict", mock.Anything, mock.Anything).
			Return(entity.Score{}, errs.NewClassifierError("encode", errs.ErrInvalidFeature)).Once()
		f.metrics.On("PredictionFailed", "invalid_input").Return().Once()

		_, err := f.service.Predict(context.Background(), 42, validInput())

		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		assert.False(t, errs.IsClassifierFailure(err))
	})

	t.Run("Reset failure stops the flow", func(t *testing.T) {
		f := newFraudFixture(t)

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(nil, errs.ErrUserNotFound).Once()
		f.metrics.On("PredictionFailed", "internal").Return().Once()

		_, err := f.service.Predict(context.Background(), 42, validInput())

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		f.users.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Record insert failure keeps the balance", func(t *testing.T) {
		f := newFraudFixture(t)
		user := userWithCredits(t, 50)
		dbErr := errors.New("insert failed")

		f.ledger.On("ResetIfDue", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.users.On("GetByIDForUpdate", mock.Anything, uint64(42)).Return(user, nil).Once()
		f.classifier.On("Predict", mock.Anything, mock.Anything).Return(entity.Score{Probability: 0.5, IsFraud: true}, nil).Once()
		f.transactions.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()
		f.metrics.On("PredictionFailed", "internal").Return().Once()

		_, err := f.service.Predict(context.Background(), 42, validInput())

		assert.ErrorIs(t, err, dbErr)
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "insufficient_credits", failureReason(errs.NewInsufficientCreditsError(1, 10, 0)))
	assert.Equal(t, "invalid_input", failureReason(errs.ErrInvalidAmount))
	assert.Equal(t, "classifier", failureReason(errs.NewClassifierError("predict", errors.New("nan"))))
	assert.Equal(t, "canceled", failureReason(context.Canceled))
	assert.Equal(t, "internal", failureReason(errors.New("boom")))
}
