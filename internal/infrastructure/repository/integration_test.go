package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/lock"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/playrummy/ledger/internal/infrastructure/repository"
	"github.com/playrummy/ledger/internal/infrastructure/repository/testutil"
	"github.com/playrummy/ledger/internal/usecase/economy"
	"github.com/playrummy/ledger/internal/usecase/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEconomyUseCase(db *gorm.DB) domain.EconomyUseCase {
	log := logger.NewLogger("test", "error")
	return economy.NewEconomyUseCase(
		repository.NewUserRepository(db),
		repository.NewEconomyLogRepository(db),
		repository.NewOutboxRepository(db),
		db,
		log,
		lock.NewUserLockManager(log),
	)
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func createGame(t *testing.T, db *gorm.DB) *domain.Game {
	game := &domain.Game{Metadata: domain.JSONB{"variant": "points"}}
	require.NoError(t, repository.NewGameRepository(db).Create(game))
	return game
}

func TestApplyCoinDeltaEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	uc := newEconomyUseCase(testDB.DB)
	user := createUser(t, testDB.DB, "alice")

	entry, balance, err := uc.ApplyCoinDelta(context.Background(), user.ID, 50, "round winnings")
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
	assert.NotZero(t, entry.ID)

	_, balance, err = uc.ApplyCoinDelta(context.Background(), user.ID, -20, "round buy-in")
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)

	// the stored balance, the usecase's view, and the ledger sum all agree
	stored, err := uc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), stored)

	sum, err := uc.SumForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), sum)

	report, err := uc.Reconcile(user.ID)
	require.NoError(t, err)
	assert.True(t, report.Balanced)

	entries, err := uc.ListEntries(user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(50), entries[0].CoinsChange)
	assert.Equal(t, "round winnings", entries[0].Reason)
	assert.Equal(t, int64(-20), entries[1].CoinsChange)
}

func TestApplyCoinDeltaUnknownUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	uc := newEconomyUseCase(testDB.DB)

	entry, _, err := uc.ApplyCoinDelta(context.Background(), 424242, 50, "round winnings")
	assert.Nil(t, entry)
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeUserNotFound, appErr.Code)

	// nothing was written
	var count int64
	testDB.DB.Model(&domain.EconomyLogEntry{}).Count(&count)
	assert.Zero(t, count)
}

func TestConcurrentAdjustmentsDoNotLoseUpdates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	uc := newEconomyUseCase(testDB.DB)
	user := createUser(t, testDB.DB, "bob")

	const workers = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			_, _, err := uc.ApplyCoinDelta(context.Background(), user.ID, 1, fmt.Sprintf("bonus %d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	balance, err := uc.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), balance)

	entries, err := uc.ListEntries(user.ID, workers+1, 0)
	require.NoError(t, err)
	assert.Len(t, entries, workers)

	report, err := uc.Reconcile(user.ID)
	require.NoError(t, err)
	assert.True(t, report.Balanced)
}

func TestLedgerPaginationIsRestartable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	uc := newEconomyUseCase(testDB.DB)
	user := createUser(t, testDB.DB, "carol")

	for i := 1; i <= 5; i++ {
		_, _, err := uc.ApplyCoinDelta(context.Background(), user.ID, int64(i), fmt.Sprintf("grant %d", i))
		require.NoError(t, err)
	}

	var all []*domain.EconomyLogEntry
	for offset := 0; ; offset += 2 {
		page, err := uc.ListEntries(user.ID, 2, offset)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
	}

	require.Len(t, all, 5)
	for i, entry := range all {
		assert.Equal(t, int64(i+1), entry.CoinsChange)
	}
}

func TestRoundRecordingAndPlacingConstraint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	log := logger.NewLogger("test", "error")
	user := createUser(t, testDB.DB, "dave")
	game := createGame(t, testDB.DB)

	uc := round.NewRoundUseCase(
		repository.NewRoundRepository(testDB.DB),
		repository.NewUserRepository(testDB.DB),
		repository.NewGameRepository(testDB.DB),
		repository.NewOutboxRepository(testDB.DB),
		testDB.DB,
		log,
	)

	winner, err := uc.RecordRound(user.ID, game.ID, 120, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Placing)

	dnf, err := uc.RecordRound(user.ID, game.ID, 0, domain.PlacingDNF)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacingDNF, dnf.Placing)

	// the database enforces the placing domain even for writes that bypass
	// the usecase
	err = testDB.DB.Exec(
		`INSERT INTO game_rounds (user_id, game_id, points, placing, created_at, updated_at) VALUES (?, ?, 0, 0, NOW(), NOW())`,
		user.ID, game.ID).Error
	assert.Error(t, err)

	rounds, err := uc.ListByGame(game.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, rounds, 2)
}

func TestUsernameUniqueCaseInsensitive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	userRepo := repository.NewUserRepository(testDB.DB)

	createUser(t, testDB.DB, "eve")

	dup := &domain.User{
		Username:     "EVE",
		Email:        "eve2@example.com",
		PasswordHash: "x",
	}
	assert.Error(t, userRepo.Create(dup))

	// lookup matches regardless of case
	found, err := userRepo.GetByUsername("Eve")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "eve", found.Username)
}

func TestAddCoinsReturnsNewBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	userRepo := repository.NewUserRepository(testDB.DB)
	user := createUser(t, testDB.DB, "frank")

	balance, err := userRepo.AddCoins(user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	balance, err = userRepo.AddCoins(user.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), balance)

	_, err = userRepo.AddCoins(424242, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOutboxEventsEnqueuedWithEconomyWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	uc := newEconomyUseCase(testDB.DB)
	user := createUser(t, testDB.DB, "grace")

	_, _, err := uc.ApplyCoinDelta(context.Background(), user.ID, 50, "round winnings")
	require.NoError(t, err)

	events, err := repository.NewOutboxRepository(testDB.DB).GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeCoinsChanged, events[0].Type)
	assert.Equal(t, domain.EventStatusPending, events[0].Status)
}
