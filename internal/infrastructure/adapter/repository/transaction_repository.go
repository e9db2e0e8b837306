package repository

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	m := model.Transaction{
		ID:               transaction.ID,
		UserID:           transaction.UserID,
		Amount:           transaction.Amount,
		Merchant:         transaction.Merchant,
		Category:         string(transaction.Category),
		Hour:             transaction.Hour,
		UserAge:          transaction.UserAge,
		Description:      transaction.Description,
		IsFraud:          transaction.IsFraud,
		FraudProbability: transaction.FraudProbability,
		ConfidenceScore:  transaction.ConfidenceScore,
		RiskLevel:        string(transaction.RiskLevel),
		CreatedAt:        transaction.CreatedAt,
		ProcessedAt:      transaction.ProcessedAt,
	}
	if fb := transaction.Feedback; fb != nil {
		correct, date := fb.Correct, fb.Date
		m.FeedbackCorrect = &correct
		m.FeedbackNotes = fb.Notes
		m.FeedbackDate = &date
	}
	return m
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	transaction := &entity.Transaction{
		ID:               m.ID,
		UserID:           m.UserID,
		Amount:           m.Amount,
		Merchant:         m.Merchant,
		Category:         entity.Category(m.Category),
		Hour:             m.Hour,
		UserAge:          m.UserAge,
		Description:      m.Description,
		IsFraud:          m.IsFraud,
		FraudProbability: m.FraudProbability,
		ConfidenceScore:  m.ConfidenceScore,
		RiskLevel:        entity.RiskLevel(m.RiskLevel),
		CreatedAt:        m.CreatedAt,
		ProcessedAt:      m.ProcessedAt,
	}
	if m.FeedbackCorrect != nil {
		fb := &entity.Feedback{Correct: *m.FeedbackCorrect, Notes: m.FeedbackNotes}
		if m.FeedbackDate != nil {
			fb.Date = *m.FeedbackDate
		}
		transaction.Feedback = fb
	}
	return transaction
}

// Create saves a new prediction record
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := r.entityToModel(transaction)
	transactionModel.ID = 0

	if err := r.db.WithContext(ctx).Create(&transactionModel).Error; err != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"user_id": transaction.UserID,
			"error":   err.Error(),
		})
		if r.errorClassifier.IsConstraintError(err) && !r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrUserNotFound
		}
		return r.errorClassifier.Map(err, errs.ErrUserNotFound)
	}

	transaction.ID = transactionModel.ID
	r.logger.Debug("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"risk_level":     transaction.RiskLevel,
	})
	return nil
}

// GetByIDForUser retrieves a record owned by the given user
func (r *TransactionRepository) GetByIDForUser(ctx context.Context, id, userID uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel).Error
	if err != nil {
		mapped := r.errorClassifier.Map(err, errs.ErrTransactionNotFound)
		if !errs.IsNotFoundError(mapped) {
			r.logger.Error("Failed to get transaction", map[string]any{
				"transaction_id": id,
				"user_id":        userID,
				"error":          err.Error(),
			})
		}
		return nil, mapped
	}
	return r.modelToEntity(&transactionModel), nil
}

// UpdateFeedback stores the feedback fields of a record
func (r *TransactionRepository) UpdateFeedback(ctx context.Context, transaction *entity.Transaction) error {
	m := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]any{
			"feedback_correct": m.FeedbackCorrect,
			"feedback_notes":   m.FeedbackNotes,
			"feedback_date":    m.FeedbackDate,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update transaction feedback", map[string]any{
			"transaction_id": transaction.ID,
			"error":          result.Error.Error(),
		})
		return r.errorClassifier.Map(result.Error, errs.ErrTransactionNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// applyFilter narrows a query to the filter's criteria
func applyFilter(db *gorm.DB, filter entity.TransactionFilter) *gorm.DB {
	if merchant := strings.ToLower(strings.TrimSpace(filter.Merchant)); merchant != "" {
		db = db.Where("LOWER(merchant) LIKE ?", "%"+merchant+"%")
	}
	if filter.Category != "" {
		db = db.Where("category = ?", string(filter.Category))
	}
	if filter.FraudStatus != nil {
		db = db.Where("is_fraud = ?", *filter.FraudStatus)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", filter.EndDate.UTC())
	}
	return db
}

// ListByUser returns one page of a user's records, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	filter = filter.Normalized()

	query := applyFilter(r.db.WithContext(ctx).Model(&model.Transaction{}).Where("user_id = ?", userID), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.logger.Error("Failed to count transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, r.errorClassifier.Map(err, errs.ErrNotFound)
	}

	var transactionModels []model.Transaction
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.PerPage).
		Find(&transactionModels).Error
	if err != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, r.errorClassifier.Map(err, errs.ErrNotFound)
	}

	items := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		items = append(items, r.modelToEntity(&transactionModels[i]))
	}

	return &entity.TransactionPage{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}, nil
}

type statsRow struct {
	Total              int64
	Fraudulent         int64
	AverageProbability float64
}

const statsSelect = "COUNT(*) AS total, " +
	"COALESCE(SUM(CASE WHEN is_fraud THEN 1 ELSE 0 END), 0) AS fraudulent, " +
	"COALESCE(AVG(fraud_probability), 0) AS average_probability"

func (r *TransactionRepository) stats(ctx context.Context, db *gorm.DB) (*entity.TransactionStats, error) {
	var row statsRow
	if err := db.WithContext(ctx).Model(&model.Transaction{}).Select(statsSelect).Scan(&row).Error; err != nil {
		r.logger.Error("Failed to aggregate transactions", map[string]any{
			"error": err.Error(),
		})
		return nil, r.errorClassifier.Map(err, errs.ErrNotFound)
	}
	return &entity.TransactionStats{
		Total:              row.Total,
		Fraudulent:         row.Fraudulent,
		AverageProbability: row.AverageProbability,
	}, nil
}

// StatsByUser aggregates a user's records
func (r *TransactionRepository) StatsByUser(ctx context.Context, userID uint64) (*entity.TransactionStats, error) {
	return r.stats(ctx, r.db.Where("user_id = ?", userID))
}

// Stats aggregates every record in the system
func (r *TransactionRepository) Stats(ctx context.Context) (*entity.TransactionStats, error) {
	return r.stats(ctx, r.db)
}
