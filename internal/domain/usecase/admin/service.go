package admin

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// Service implements the AdminUseCase interface
type Service struct {
	uow          persistence.UnitOfWork
	sequencer    coreport.Sequencer
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	uow persistence.UnitOfWork,
	sequencer coreport.Sequencer,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		sequencer:    sequencer,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.AdminUseCase = (*Service)(nil)

// ListUsers returns every account ordered by id
func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.uow.GetUserRepository(ctx).List(ctx)
}

// SetCredits overwrites a user's balance under the user's queue and row lock
func (s *Service) SetCredits(ctx context.Context, userID uint64, credits int64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if credits < 0 {
		return nil, errs.ErrNegativeCredits
	}

	var user *entity.User
	err := s.sequencer.Do(ctx, userID, func(ctx context.Context) error {
		return persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
			users := s.uow.GetUserRepository(txCtx)

			u, err := users.GetByIDForUpdate(txCtx, userID)
			if err != nil {
				return err
			}
			if err := u.SetCredits(credits, s.timeProvider.Now()); err != nil {
				return err
			}
			if err := users.Update(txCtx, u); err != nil {
				return err
			}

			user = u
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin updated user credits", map[string]any{
		"user_id": userID,
		"credits": credits,
	})
	return user, nil
}

// DeleteUser removes a non-admin account together with its purchases and transactions
func (s *Service) DeleteUser(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}

	err := s.sequencer.Do(ctx, userID, func(ctx context.Context) error {
		return persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
			users := s.uow.GetUserRepository(txCtx)

			u, err := users.GetByIDForUpdate(txCtx, userID)
			if err != nil {
				return err
			}
			if u.IsAdmin {
				return errs.ErrAdminDeletion
			}

			return users.Delete(txCtx, userID)
		})
	})
	if err != nil {
		s.logger.Warn("Admin user deletion failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("Admin deleted user", map[string]any{"user_id": userID})
	return nil
}

// Stats returns system-wide counters
func (s *Service) Stats(ctx context.Context) (*usecase.SystemStats, error) {
	totalUsers, err := s.uow.GetUserRepository(ctx).Count(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.uow.GetTransactionRepository(ctx).Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.SystemStats{
		TotalUsers:        totalUsers,
		TotalTransactions: stats.Total,
		FraudTransactions: stats.Fraudulent,
	}, nil
}
