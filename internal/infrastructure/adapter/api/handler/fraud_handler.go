package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// FraudHandler serves credit purchases and fraud checks
type FraudHandler struct {
	fraud  usecase.FraudUseCase
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewFraudHandler creates a new fraud handler instance
func NewFraudHandler(fraud usecase.FraudUseCase, ledger usecase.LedgerUseCase, logger coreport.Logger) *FraudHandler {
	return &FraudHandler{fraud: fraud, ledger: ledger, logger: logger}
}

// PurchaseCredits handles the POST /fraud/credits/purchase endpoint
func (h *FraudHandler) PurchaseCredits(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	result, err := h.ledger.Purchase(c.Request.Context(), userID, req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Credits purchased", map[string]any{
		"userId":       userID,
		"amount":       req.Amount.String(),
		"creditsAdded": result.Purchase.CreditsAdded,
		"credits":      result.Credits,
	})
	c.JSON(http.StatusOK, dto.NewPurchaseResponse(result))
}

// Balance handles the GET /fraud/credits/balance endpoint
func (h *FraudHandler) Balance(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	credits, err := h.ledger.Balance(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Credits: credits})
}

// Predict handles the POST /fraud/predict endpoint
func (h *FraudHandler) Predict(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	result, err := h.fraud.Predict(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPredictResponse(result))
}

// SubmitFeedback handles the POST /fraud/transactions/:id/feedback endpoint
func (h *FraudHandler) SubmitFeedback(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	transactionID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	tx, err := h.fraud.SubmitFeedback(c.Request.Context(), userID, transactionID, *req.FeedbackCorrect, req.FeedbackNotes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}
