package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own profile and history
type UserHandler struct {
	accounts usecase.AccountUseCase
	ledger   usecase.LedgerUseCase
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(accounts usecase.AccountUseCase, ledger usecase.LedgerUseCase) *UserHandler {
	return &UserHandler{accounts: accounts, ledger: ledger}
}

// Me handles the GET /user/me endpoint
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// CreditHistory handles the GET /user/me/credit-history endpoint
func (h *UserHandler) CreditHistory(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	purchases, err := h.ledger.History(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCreditPurchaseResponses(purchases))
}

// Transactions handles the GET /user/transactions endpoint
func (h *UserHandler) Transactions(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var query dto.TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	filter, err := transactionFilter(query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.accounts.Transactions(c.Request.Context(), userID, filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionListResponse(page))
}

// Stats handles the GET /user/stats endpoint
func (h *UserHandler) Stats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	stats, err := h.accounts.Stats(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserStatsResponse(stats))
}

func transactionFilter(query dto.TransactionQuery) (entity.TransactionFilter, error) {
	filter := entity.TransactionFilter{
		Merchant: query.Merchant,
		Page:     query.Page,
		PerPage:  query.PerPage,
	}

	if query.Category != "" {
		category, err := entity.ParseCategory(query.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = category
	}

	switch query.FraudStatus {
	case "fraud":
		fraud := true
		filter.FraudStatus = &fraud
	case "legitimate":
		fraud := false
		filter.FraudStatus = &fraud
	}

	var err error
	if filter.StartDate, err = parseDate("start_date", query.StartDate, false); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDate("end_date", query.EndDate, true); err != nil {
		return filter, err
	}
	return filter, nil
}
