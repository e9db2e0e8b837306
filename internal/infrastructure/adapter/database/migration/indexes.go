package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the composite indexes behind listings and stats
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

var portableIndexes = []struct {
	name string
	ddl  string
}{
	{"idx_transactions_user_created", "CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions (user_id, created_at)"},
	{"idx_transactions_user_fraud", "CREATE INDEX IF NOT EXISTS idx_transactions_user_fraud ON transactions (user_id, is_fraud)"},
	{"idx_credit_purchases_user_created", "CREATE INDEX IF NOT EXISTS idx_credit_purchases_user_created ON credit_purchases (user_id, created_at)"},
}

// CreateIndexes creates the indexes; PostgreSQL also gets a BRIN index on creation time
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	for _, idx := range portableIndexes {
		if err := db.Exec(idx.ddl).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
		ON transactions USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Warn("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
	}

	return nil
}
