package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user := &entity.User{
		ID:              userModel.ID,
		Name:            userModel.Name,
		Email:           userModel.Email,
		Username:        userModel.Username,
		PasswordHash:    userModel.PasswordHash,
		LastCreditReset: userModel.LastCreditReset,
		IsAdmin:         userModel.IsAdmin,
		CreatedAt:       userModel.CreatedAt,
	}
	if err := user.SetCredits(userModel.Credits, userModel.UpdatedAt); err != nil {
		r.logger.Error("Stored user has an invalid balance", map[string]any{
			"user_id": userModel.ID,
			"credits": userModel.Credits,
		})
		return nil, fmt.Errorf("%w: user %d has a negative balance", errs.ErrInternalServer, userModel.ID)
	}
	return user, nil
}

// entityToModel converts a user entity to a database model
func (r *UserRepository) entityToModel(user *entity.User) model.User {
	return model.User{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Username:        user.Username,
		PasswordHash:    user.PasswordHash,
		Credits:         user.Credits(),
		LastCreditReset: user.LastCreditReset,
		IsAdmin:         user.IsAdmin,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	mapped := r.errorClassifier.Map(err, errs.ErrUserNotFound)
	fields["error"] = err.Error()

	switch {
	case errs.IsNotFoundError(mapped), errs.IsConflictError(mapped):
		r.logger.Debug(fmt.Sprintf("User lookup failed when %s", operation), fields)
	default:
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	}
	return mapped
}

func (r *UserRepository) first(ctx context.Context, db *gorm.DB, operation string, fields map[string]any) (*entity.User, error) {
	var userModel model.User
	if err := db.WithContext(ctx).First(&userModel).Error; err != nil {
		return nil, r.handleDatabaseError(operation, err, fields)
	}
	return r.modelToEntity(&userModel)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	return r.first(ctx, r.db.Where("id = ?", id), "getting user", map[string]any{"user_id": id})
}

// GetByIDForUpdate retrieves a user holding a row lock until the transaction ends.
// SQLite ignores the locking clause and relies on its single writer.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	db := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
	return r.first(ctx, db, "locking user", map[string]any{"user_id": id})
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	return r.first(ctx, r.db.Where("email = ?", email), "getting user by email", map[string]any{"email": email})
}

// ExistsByEmail reports whether the email is already registered
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", entity.NormalizeEmail(email))
}

// ExistsByUsername reports whether the username is already taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *UserRepository) exists(ctx context.Context, query string, value string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, value).Count(&count).Error; err != nil {
		return false, r.handleDatabaseError("checking user existence", err, map[string]any{"value": value})
	}
	return count > 0, nil
}

// Create inserts a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := r.entityToModel(user)
	userModel.ID = 0

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, map[string]any{
			"email":    user.Email,
			"username": user.Username,
		})
	}

	user.ID = userModel.ID
	r.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
	})
	return nil
}

// Update persists credits, reset timestamp and profile fields
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":              user.Name,
			"email":             user.Email,
			"username":          user.Username,
			"password_hash":     user.PasswordHash,
			"credits":           user.Credits(),
			"last_credit_reset": user.LastCreditReset,
			"is_admin":          user.IsAdmin,
			"updated_at":        user.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, map[string]any{"user_id": user.ID})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", map[string]any{
			"user_id": user.ID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Debug("User updated successfully", map[string]any{
		"user_id": user.ID,
		"credits": user.Credits(),
	})
	return nil
}

// Delete removes a user together with purchases and transactions
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.CreditPurchase{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return r.handleDatabaseError("deleting user", err, map[string]any{"user_id": id})
	}

	r.logger.Info("User deleted", map[string]any{
		"user_id": id,
	})
	return nil
}

// List returns all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&userModels).Error; err != nil {
		return nil, r.handleDatabaseError("listing users", err, map[string]any{})
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		user, err := r.modelToEntity(&userModels[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, r.handleDatabaseError("counting users", err, map[string]any{})
	}
	return count, nil
}
