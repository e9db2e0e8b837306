package persistence

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// UserRepository defines the methods used to store and load accounts
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user and holds a row lock until the
	// surrounding transaction ends. Must be called inside UnitOfWork.Begin.
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrUserLocked: If the lock could not be acquired
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by normalized email
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether the email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether the username is already taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create inserts a new user and assigns its ID
	//
	// Possible errors:
	// - ErrConflict: If email or username is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update persists credits, reset timestamp and profile fields
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user together with purchases and transactions
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	Delete(ctx context.Context, id uint64) error

	// List returns all users ordered by ID
	List(ctx context.Context) ([]*entity.User, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
