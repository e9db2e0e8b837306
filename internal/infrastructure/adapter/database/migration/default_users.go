package migration

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/security"
)

// AdminSeed describes the administrator created on first start
type AdminSeed struct {
	Name     string
	Email    string
	Username string
	Password string
}

// SeedAdmin creates the administrator unless an account already uses its email or username.
// It reports whether an account was created.
func SeedAdmin(
	ctx context.Context,
	uow persistence.UnitOfWork,
	hasher security.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	seed AdminSeed,
) (bool, error) {
	if seed.Email == "" || seed.Username == "" || seed.Password == "" {
		return false, errors.New("admin seed requires email, username and password")
	}

	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	created := false
	err = persistence.WithinTransaction(ctx, uow, func(txCtx context.Context) error {
		users := uow.GetUserRepository(txCtx)

		emailTaken, err := users.ExistsByEmail(txCtx, seed.Email)
		if err != nil {
			return err
		}
		usernameTaken, err := users.ExistsByUsername(txCtx, seed.Username)
		if err != nil {
			return err
		}
		if emailTaken || usernameTaken {
			return nil
		}

		admin, err := entity.NewUser(seed.Name, seed.Email, seed.Username, hash, timeProvider.Now())
		if err != nil {
			return err
		}
		admin.IsAdmin = true

		if err := users.Create(txCtx, admin); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		logger.Info("Default admin user created", map[string]any{
			"email":    entity.NormalizeEmail(seed.Email),
			"username": seed.Username,
		})
	}
	return created, nil
}
