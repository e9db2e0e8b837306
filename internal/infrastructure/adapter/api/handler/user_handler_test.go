package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/handler"
	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*testServer, *mocks.MockLedgerUseCase) {
	s := newTestServer(t)
	ledger := mocks.NewMockLedgerUseCase(t)

	h := handler.NewUserHandler(s.accounts, ledger)
	s.secured.GET("/user/me", h.Me)
	s.secured.GET("/user/me/credit-history", h.CreditHistory)
	s.secured.GET("/user/transactions", h.Transactions)
	s.secured.GET("/user/stats", h.Stats)
	return s, ledger
}

func TestUserHandler_Me(t *testing.T) {
	s, _ := newUserFixture(t)
	s.accounts.On("Profile", mock.Anything, s.user.ID).Return(s.user, nil).Once()

	w := s.do(http.MethodGet, "/user/me", "", userToken)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.UserResponse](t, w)
	assert.Equal(t, s.user.ID, resp.ID)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, int64(100), resp.Credits)
	assert.False(t, resp.IsAdmin)
}

func TestUserHandler_Me_DeletedUser(t *testing.T) {
	s, _ := newUserFixture(t)
	s.accounts.On("Profile", mock.Anything, s.user.ID).Return(nil, errs.ErrUserNotFound).Once()

	w := s.do(http.MethodGet, "/user/me", "", userToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_CreditHistory(t *testing.T) {
	s, ledger := newUserFixture(t)

	newer, err := entity.NewCreditPurchase(s.user.ID, decimal.RequireFromString("2.50"), testNow.Add(time.Hour))
	require.NoError(t, err)
	older, err := entity.NewCreditPurchase(s.user.ID, decimal.RequireFromString("5"), testNow)
	require.NoError(t, err)
	ledger.On("History", mock.Anything, s.user.ID).Return([]*entity.CreditPurchase{newer, older}, nil).Once()

	w := s.do(http.MethodGet, "/user/me/credit-history", "", userToken)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]dto.CreditPurchaseResponse](t, w)
	require.Len(t, resp, 2)
	assert.Equal(t, 2.5, resp[0].Amount)
	assert.Equal(t, int64(50), resp[0].CreditsAdded)
	assert.Equal(t, int64(100), resp[1].CreditsAdded)
}

func TestUserHandler_Transactions(t *testing.T) {
	t.Run("Query string becomes a filter", func(t *testing.T) {
		s, _ := newUserFixture(t)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
		fraud := true
		expected := entity.TransactionFilter{
			Merchant:    "amaz",
			Category:    entity.CategoryFood,
			FraudStatus: &fraud,
			StartDate:   &start,
			EndDate:     &end,
			Page:        2,
			PerPage:     5,
		}

		record := entity.FeatureRecord{Amount: 10, Merchant: "amazon", Category: entity.CategoryFood, Hour: 1, UserAge: 30}
		tx := entity.NewTransaction(s.user.ID, record, nil, entity.Score{Probability: 0.9, IsFraud: true}, testNow)
		s.accounts.On("Transactions", mock.Anything, s.user.ID, expected).Return(&entity.TransactionPage{
			Items: []*entity.Transaction{tx}, Total: 6, Page: 2, PerPage: 5,
		}, nil).Once()

		w := s.do(http.MethodGet,
			"/user/transactions?merchant=amaz&category=Food&fraud_status=fraud&start_date=2024-03-01&end_date=2024-03-02&page=2&per_page=5",
			"", userToken)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[dto.TransactionListResponse](t, w)
		assert.Equal(t, int64(6), resp.Total)
		assert.Equal(t, 2, resp.Page)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "high", resp.Items[0].RiskLevel)
	})

	t.Run("RFC3339 dates and legitimate filter", func(t *testing.T) {
		s, _ := newUserFixture(t)

		start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		legit := false
		s.accounts.On("Transactions", mock.Anything, s.user.ID, mock.MatchedBy(func(f entity.TransactionFilter) bool {
			return f.FraudStatus != nil && *f.FraudStatus == legit &&
				f.StartDate != nil && f.StartDate.Equal(start) && f.EndDate == nil
		})).Return(&entity.TransactionPage{Page: 1, PerPage: 10}, nil).Once()

		w := s.do(http.MethodGet, "/user/transactions?fraud_status=legitimate&start_date=2024-03-01T12:00:00%2B02:00", "", userToken)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decode[dto.TransactionListResponse](t, w).Items)
	})

	t.Run("Invalid filters are rejected", func(t *testing.T) {
		s, _ := newUserFixture(t)

		for _, query := range []string{
			"fraud_status=maybe",
			"category=crypto",
			"start_date=yesterday",
			"per_page=500",
			"end_date=2024-13-01",
		} {
			w := s.do(http.MethodGet, "/user/transactions?"+query, "", userToken)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
		s.accounts.AssertNotCalled(t, "Transactions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Stats(t *testing.T) {
	s, _ := newUserFixture(t)
	s.accounts.On("Stats", mock.Anything, s.user.ID).Return(&usecase.UserStats{
		TotalTransactions:      4,
		FraudulentTransactions: 1,
		RemainingCredits:       60,
		AverageProbability:     0.41234,
	}, nil).Once()

	w := s.do(http.MethodGet, "/user/stats", "", userToken)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.UserStatsResponse](t, w)
	assert.Equal(t, int64(4), resp.TotalTransactions)
	assert.Equal(t, int64(1), resp.FraudulentTransactions)
	assert.Equal(t, int64(60), resp.RemainingCredits)
	assert.Equal(t, 0.412, resp.AverageProbability)
}
