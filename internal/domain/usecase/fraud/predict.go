package fraud

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// Predict scores a transaction and debits the fixed cost on success.
// The reset check commits on its own; the credit check, scoring, debit
// and record insert share one transaction under the user's row lock.
func (s *Service) Predict(ctx context.Context, userID uint64, input entity.TransactionInput) (*usecase.PredictionResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	var result *usecase.PredictionResult
	err := s.sequencer.Do(ctx, userID, func(ctx context.Context) error {
		if _, err := s.ledger.ResetIfDue(ctx, userID); err != nil {
			return err
		}

		return persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
			var err error
			result, err = s.scoreAndDebit(txCtx, userID, input)
			return err
		})
	})
	if err != nil {
		reason := failureReason(err)
		s.metrics.PredictionFailed(reason)

		fields := logFields(map[string]any{"user_id": userID, "reason": reason}, err)
		if reason == "internal" || reason == "classifier" {
			s.logger.Error("Fraud prediction failed", fields)
		} else {
			s.logger.Warn("Fraud prediction rejected", fields)
		}
		return nil, err
	}

	tx := result.Transaction
	s.metrics.PredictionScored(string(tx.RiskLevel), tx.IsFraud)
	s.logger.Info("Fraud prediction completed", map[string]any{
		"user_id":           userID,
		"transaction_id":    tx.ID,
		"fraud_probability": entity.RoundProbability(tx.FraudProbability),
		"risk_level":        tx.RiskLevel,
		"is_fraud":          tx.IsFraud,
		"remaining_credits": result.RemainingCredits,
		"model_mode":        s.classifier.Mode(),
	})

	return result, nil
}

func (s *Service) scoreAndDebit(txCtx context.Context, userID uint64, input entity.TransactionInput) (*usecase.PredictionResult, error) {
	users := s.uow.GetUserRepository(txCtx)

	user, err := users.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanAfford(entity.PredictionCost) {
		return nil, errs.NewInsufficientCreditsError(userID, entity.PredictionCost, user.Credits())
	}

	record, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	score, err := s.classifier.Predict(txCtx, record)
	if err != nil {
		if txCtx.Err() == nil && !errs.IsInvalidInputError(err) && !errs.IsClassifierFailure(err) {
			err = errs.NewClassifierError("predict", err)
		}
		return nil, err
	}

	now := s.timeProvider.Now()
	tx := entity.NewTransaction(userID, record, input.Description, score, now)

	if err := user.Debit(entity.PredictionCost, now); err != nil {
		return nil, err
	}
	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, tx); err != nil {
		return nil, err
	}
	if err := users.Update(txCtx, user); err != nil {
		return nil, err
	}

	return &usecase.PredictionResult{
		Transaction:      tx,
		RemainingCredits: user.Credits(),
		Submitted:        input,
	}, nil
}
