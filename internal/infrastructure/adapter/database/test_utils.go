package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/time"
)

// NewTestDatabase connects a migrated in-memory SQLite database private to the test.
// The connection is closed on test cleanup.
func NewTestDatabase(t testing.TB) *Manager {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	config := DefaultConfig()
	config.Path = fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	config.LogLevel = "silent"
	config.RetryAttempts = 1

	var log coreport.Logger = logger.NewNoopLogger()
	manager := NewManager(config, log, timeprovider.NewRealTimeProvider(), nil)

	ctx := context.Background()
	if _, err := manager.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return manager
}
