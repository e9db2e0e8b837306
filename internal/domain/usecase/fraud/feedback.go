package fraud

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
)

// SubmitFeedback records the user's verdict on one of their predictions
func (s *Service) SubmitFeedback(ctx context.Context, userID, transactionID uint64, correct bool, notes *string) (*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if transactionID == 0 {
		return nil, errs.ErrTransactionNotFound
	}

	var updated *entity.Transaction
	err := persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
		repo := s.uow.GetTransactionRepository(txCtx)

		tx, err := repo.GetByIDForUser(txCtx, transactionID, userID)
		if err != nil {
			return err
		}
		if err := tx.ApplyFeedback(correct, notes, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := repo.UpdateFeedback(txCtx, tx); err != nil {
			return err
		}

		updated = tx
		return nil
	})
	if err != nil {
		s.logger.Warn("Feedback submission failed", map[string]any{
			"user_id":        userID,
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Feedback recorded", map[string]any{
		"user_id":        userID,
		"transaction_id": transactionID,
		"correct":        correct,
	})
	return updated, nil
}
