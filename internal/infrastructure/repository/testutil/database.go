package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/playrummy/ledger/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestDatabase represents a test database instance
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	URL       string
}

// SetupTestDatabase creates a new PostgreSQL test container and prepares the
// schema
func SetupTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	labels := map[string]string{
		"test":      "rummy-ledger-repository",
		"test-name": t.Name(),
		"timestamp": time.Now().Format("20060102-150405"),
		"cleanup":   "auto",
	}

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("rummy_ledger_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(labels),
	)
	require.NoError(t, err)

	testDB := &TestDatabase{
		Container: postgresContainer,
	}

	t.Cleanup(func() {
		testDB.cleanup(t)
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Game{},
		&domain.GameRound{},
		&domain.GameAction{},
		&domain.EconomyLogEntry{},
		&domain.OutboxEvent{},
	)
	require.NoError(t, err)

	// constraints the SQL migrations carry but AutoMigrate does not
	require.NoError(t, db.Exec(
		`ALTER TABLE game_rounds ADD CONSTRAINT chk_game_rounds_placing CHECK (placing = -1 OR placing >= 1)`).Error)
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_users_username_lower ON users (LOWER(username))`).Error)
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_users_email_lower ON users (LOWER(email))`).Error)

	testDB.DB = db
	testDB.URL = connStr

	return testDB
}

// cleanup closes the database connection and terminates the container
func (td *TestDatabase) cleanup(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Logf("Panic during container cleanup (recovered): %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if td.DB != nil {
		if sqlDB, err := td.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate test container: %v", err)
		}
	}
}
