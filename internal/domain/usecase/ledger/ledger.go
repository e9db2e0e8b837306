package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// Service implements the LedgerUseCase interface
type Service struct {
	uow          persistence.UnitOfWork
	sequencer    *Sequencer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	uow persistence.UnitOfWork,
	sequencer *Sequencer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Service {
	return &Service{
		uow:          uow,
		sequencer:    sequencer,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// CheckAndReset restores the default allowance when the reset window elapsed
func (s *Service) CheckAndReset(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	var user *entity.User
	err := s.sequencer.Do(ctx, userID, func(ctx context.Context) error {
		var err error
		user, err = s.ResetIfDue(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetIfDue applies and persists a pending reset in its own transaction
func (s *Service) ResetIfDue(ctx context.Context, userID uint64) (*entity.User, error) {
	var user *entity.User
	var reset bool

	err := persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
		repo := s.uow.GetUserRepository(txCtx)

		u, err := repo.GetByIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}

		if u.ResetCreditsIfDue(s.timeProvider.Now()) {
			if err := repo.Update(txCtx, u); err != nil {
				return err
			}
			reset = true
		}

		user = u
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to check credit reset", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	if reset {
		s.metrics.CreditsReset()
		s.logger.Info("Credits reset to default allowance", map[string]any{
			"user_id": userID,
			"credits": user.Credits(),
		})
	}

	return user, nil
}

// Purchase converts dollars to credits and appends a purchase record.
// A pending reset is applied first so the bought credits survive it.
func (s *Service) Purchase(ctx context.Context, userID uint64, amount decimal.Decimal) (*usecase.PurchaseResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if _, err := entity.CreditsForPurchase(amount); err != nil {
		return nil, err
	}

	var result *usecase.PurchaseResult
	err := s.sequencer.Do(ctx, userID, func(ctx context.Context) error {
		if _, err := s.ResetIfDue(ctx, userID); err != nil {
			return err
		}

		return persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
			users := s.uow.GetUserRepository(txCtx)

			user, err := users.GetByIDForUpdate(txCtx, userID)
			if err != nil {
				return err
			}

			now := s.timeProvider.Now()
			purchase, err := entity.NewCreditPurchase(userID, amount, now)
			if err != nil {
				return err
			}

			if err := user.AddCredits(purchase.CreditsAdded, now); err != nil {
				return err
			}
			if err := s.uow.GetCreditPurchaseRepository(txCtx).Create(txCtx, purchase); err != nil {
				return err
			}
			if err := users.Update(txCtx, user); err != nil {
				return err
			}

			result = &usecase.PurchaseResult{Purchase: purchase, Credits: user.Credits()}
			return nil
		})
	})
	if err != nil {
		s.logger.Warn("Credit purchase failed", map[string]any{
			"user_id": userID,
			"amount":  amount.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.metrics.CreditsPurchased(result.Purchase.CreditsAdded)
	s.logger.Info("Credits purchased", map[string]any{
		"user_id":       userID,
		"amount":        amount.StringFixed(2),
		"credits_added": result.Purchase.CreditsAdded,
		"credits":       result.Credits,
	})

	return result, nil
}

// Balance returns the credits after the reset check
func (s *Service) Balance(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.CheckAndReset(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Credits(), nil
}

// History returns the user's purchases, newest first
func (s *Service) History(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	if _, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.uow.GetCreditPurchaseRepository(ctx).ListByUser(ctx, userID)
}

var _ usecase.LedgerUseCase = (*Service)(nil)
