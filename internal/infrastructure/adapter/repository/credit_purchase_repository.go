package repository

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CreditPurchaseRepository implements CreditPurchaseRepository interface using GORM
type CreditPurchaseRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.CreditPurchaseRepository = (*CreditPurchaseRepository)(nil)

// NewCreditPurchaseRepository creates a new CreditPurchaseRepository instance
func NewCreditPurchaseRepository(db *gorm.DB, logger coreport.Logger) *CreditPurchaseRepository {
	return &CreditPurchaseRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create appends a purchase and assigns its ID
func (r *CreditPurchaseRepository) Create(ctx context.Context, purchase *entity.CreditPurchase) error {
	purchaseModel := model.CreditPurchase{
		UserID:       purchase.UserID,
		Amount:       purchase.Amount,
		CreditsAdded: purchase.CreditsAdded,
		CreatedAt:    purchase.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&purchaseModel).Error; err != nil {
		r.logger.Error("Failed to record credit purchase", map[string]any{
			"user_id": purchase.UserID,
			"amount":  purchase.Amount.String(),
			"error":   err.Error(),
		})
		if r.errorClassifier.IsConstraintError(err) && !r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrUserNotFound
		}
		return r.errorClassifier.Map(err, errs.ErrUserNotFound)
	}

	purchase.ID = purchaseModel.ID
	r.logger.Info("Credit purchase recorded", map[string]any{
		"purchase_id":   purchase.ID,
		"user_id":       purchase.UserID,
		"credits_added": purchase.CreditsAdded,
	})
	return nil
}

// ListByUser returns a user's purchases, newest first
func (r *CreditPurchaseRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.CreditPurchase, error) {
	var purchaseModels []model.CreditPurchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&purchaseModels).Error
	if err != nil {
		r.logger.Error("Failed to list credit purchases", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, r.errorClassifier.Map(err, errs.ErrNotFound)
	}

	purchases := make([]*entity.CreditPurchase, 0, len(purchaseModels))
	for _, m := range purchaseModels {
		purchases = append(purchases, &entity.CreditPurchase{
			ID:           m.ID,
			UserID:       m.UserID,
			Amount:       m.Amount,
			CreditsAdded: m.CreditsAdded,
			CreatedAt:    m.CreatedAt,
		})
	}
	return purchases, nil
}
