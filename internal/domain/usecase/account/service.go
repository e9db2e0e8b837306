package account

import (
	"context"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/security"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// TokenType is reported alongside every issued token
const TokenType = "bearer"

// Field limits for registration
const (
	MaxNameLen     = 60
	MaxEmailLen    = 120
	MaxUsernameLen = 60
	MinPasswordLen = 6
)

// Service implements the AccountUseCase interface
type Service struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	tokens       security.TokenIssuer
	hasher       security.PasswordHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	tokens security.TokenIssuer,
	hasher security.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledger,
		tokens:       tokens,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.AccountUseCase = (*Service)(nil)

func validateRegistration(req usecase.RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	email := entity.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	switch {
	case name == "" || len(name) > MaxNameLen:
		return errs.NewValidationError("name", req.Name, "must be between 1 and 60 characters", nil)
	case email == "" || len(email) > MaxEmailLen || !strings.Contains(email, "@"):
		return errs.NewValidationError("email", req.Email, "must be a valid address of at most 120 characters", nil)
	case username == "" || len(username) > MaxUsernameLen:
		return errs.NewValidationError("username", req.Username, "must be between 1 and 60 characters", nil)
	case len(req.Password) < MinPasswordLen:
		return errs.NewValidationError("password", "", "must be at least 6 characters", nil)
	}
	return nil
}

// Register creates an account with the default allowance and issues a token
func (s *Service) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.AuthResult, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(req.Name, req.Email, req.Username, hash, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	err = persistence.WithinTransaction(ctx, s.uow, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		taken, err := users.ExistsByEmail(txCtx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewConflictError("email", user.Email, errs.ErrEmailTaken)
		}

		taken, err = users.ExistsByUsername(txCtx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewConflictError("username", user.Username, errs.ErrUsernameTaken)
		}

		return users.Create(txCtx, user)
	})
	if err != nil {
		s.logger.Warn("Registration failed", map[string]any{
			"email":    user.Email,
			"username": user.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return s.issue(user)
}

// Login checks credentials and issues a token
func (s *Service) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	user, err := s.uow.GetUserRepository(ctx).GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("Login rejected", map[string]any{"user_id": user.ID})
		return nil, errs.ErrInvalidCredentials
	}

	s.logger.Debug("User logged in", map[string]any{"user_id": user.ID})
	return s.issue(user)
}

func (s *Service) issue(user *entity.User) (*usecase.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(strconv.FormatUint(user.ID, 10))
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	return &usecase.AuthResult{
		Token:     token,
		TokenType: TokenType,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Authenticate resolves a bearer token to its user; every failure is ErrUnauthorized
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, errs.ErrUnauthorized
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		if !errs.IsUserNotFoundError(err) {
			s.logger.Error("Failed to load token subject", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil, errs.ErrUnauthorized
	}

	return user, nil
}

// Profile returns the user after the credit reset check
func (s *Service) Profile(ctx context.Context, userID uint64) (*entity.User, error) {
	return s.ledger.CheckAndReset(ctx, userID)
}

// Stats aggregates the user's past predictions
func (s *Service) Stats(ctx context.Context, userID uint64) (*usecase.UserStats, error) {
	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.uow.GetTransactionRepository(ctx).StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.UserStats{
		TotalTransactions:      stats.Total,
		FraudulentTransactions: stats.Fraudulent,
		RemainingCredits:       user.Credits(),
		AverageProbability:     entity.RoundProbability(stats.AverageProbability),
	}, nil
}

// Transactions lists the user's past predictions, newest first
func (s *Service) Transactions(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	filter = filter.Normalized()
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, errs.NewValidationError("end_date", filter.EndDate, "must not be before start_date", nil)
	}

	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, filter)
}
