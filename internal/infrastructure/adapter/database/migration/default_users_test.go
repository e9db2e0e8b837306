package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/security"
	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdmin(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	uow := database.NewTestDatabase(t).CreateUnitOfWork()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	clock := mocks.NewMockTimeProvider(t).Fixed(now)
	log := mocks.NewMockLogger(t).AllowAll()

	seed := migration.AdminSeed{
		Name:     "Admin User",
		Email:    "Admin@Example.com",
		Username: "admin",
		Password: "password123",
	}

	created, err := migration.SeedAdmin(ctx, uow, hasher, clock, log, seed)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := uow.GetUserRepository(ctx).GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, entity.DefaultCredits, admin.Credits())
	assert.NoError(t, hasher.Compare(admin.PasswordHash, "password123"))

	t.Run("Second run is a no-op", func(t *testing.T) {
		created, err := migration.SeedAdmin(ctx, uow, hasher, clock, log, seed)
		require.NoError(t, err)
		assert.False(t, created)

		count, err := uow.GetUserRepository(ctx).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Taken username skips the seed", func(t *testing.T) {
		other := seed
		other.Email = "root@example.com"
		created, err := migration.SeedAdmin(ctx, uow, hasher, clock, log, other)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Incomplete seed is rejected", func(t *testing.T) {
		_, err := migration.SeedAdmin(ctx, uow, hasher, clock, log, migration.AdminSeed{Email: "a@b.c"})
		assert.Error(t, err)
	})
}

func TestMigrateAll_RecordsVersion(t *testing.T) {
	manager := database.NewTestDatabase(t)
	clock := mocks.NewMockTimeProvider(t).Fixed(time.Now())
	migrations := migration.NewMigrationManager(manager.DB(), mocks.NewMockLogger(t).AllowAll(), clock)

	require.NoError(t, migrations.MigrateAll(context.Background()))

	version, err := migrations.GetCurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, migration.CurrentSchemaVersion, version)
}
