package database

import (
	"context"
	"errors"
	"testing"
	"time"

	mocks "github.com/amirhossein-jamali/fraud-scoring/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type queryCall struct {
	operation string
	failed    bool
	elapsed   time.Duration
}

type recordingObserver struct {
	calls []queryCall
}

func (o *recordingObserver) ObserveQuery(operation string, failed bool, elapsed time.Duration) {
	o.calls = append(o.calls, queryCall{operation, failed, elapsed})
}

func TestDatabaseLogger_Trace(t *testing.T) {
	begin := testNow

	setup := func(t *testing.T, level string, elapsed time.Duration) (*DatabaseLogger, *mocks.MockLogger, *recordingObserver) {
		log := mocks.NewMockLogger(t)
		clock := mocks.NewMockTimeProvider(t)
		clock.On("Since", begin).Maybe().Return(elapsed)
		observer := &recordingObserver{}
		return NewDatabaseLogger(log, clock, level, 200*time.Millisecond, observer), log, observer
	}
	query := func(sql string) func() (string, int64) {
		return func() (string, int64) { return sql, 1 }
	}

	t.Run("Failed statements are logged and counted", func(t *testing.T) {
		l, log, observer := setup(t, "warn", time.Millisecond)
		log.On("Error", "SQL Error", mock.MatchedBy(func(f map[string]any) bool {
			return f["table"] == "users" && f["type"] == "INSERT"
		})).Once()

		l.Trace(context.Background(), begin, query(`INSERT INTO "users" ("name") VALUES ("x")`), errors.New("boom"))
		assert.Equal(t, []queryCall{{"insert", true, time.Millisecond}}, observer.calls)
	})

	t.Run("Record not found is not a failure", func(t *testing.T) {
		l, _, observer := setup(t, "warn", time.Millisecond)

		l.Trace(context.Background(), begin, query("SELECT * FROM users WHERE id = 1"), gorm.ErrRecordNotFound)
		assert.Equal(t, []queryCall{{"select", false, time.Millisecond}}, observer.calls)
	})

	t.Run("Slow statements are warned", func(t *testing.T) {
		l, log, _ := setup(t, "warn", time.Second)
		log.On("Warn", "Slow SQL Query", mock.Anything).Once()

		l.Trace(context.Background(), begin, query("UPDATE users SET credits = 1"), nil)
	})

	t.Run("Silent still observes", func(t *testing.T) {
		l, _, observer := setup(t, "silent", time.Second)

		l.Trace(context.Background(), begin, query("PRAGMA foreign_keys"), errors.New("boom"))
		assert.Equal(t, "other", observer.calls[0].operation)
	})

	t.Run("Info level traces every statement at debug", func(t *testing.T) {
		l, log, _ := setup(t, "info", time.Millisecond)
		log.On("Debug", "SQL Query", mock.Anything).Once()

		l.Trace(context.Background(), begin, query("DELETE FROM transactions"), nil)
	})

	t.Run("LogMode returns a copy", func(t *testing.T) {
		l, _, _ := setup(t, "warn", 0)
		silent := l.LogMode(logger.Silent).(*DatabaseLogger)
		assert.Equal(t, logger.Silent, silent.logLevel)
		assert.Equal(t, logger.Warn, l.logLevel)
	})
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "transactions", extractTableName("SELECT count(*) FROM `transactions` WHERE user_id = 1"))
	assert.Equal(t, "credit_purchases", extractTableName(`INSERT INTO "credit_purchases" ("user_id") VALUES (1)`))
	assert.Equal(t, "users", extractTableName(`UPDATE "users" SET "credits"=90`))
	assert.Equal(t, "", extractTableName("PRAGMA foreign_keys"))
}
