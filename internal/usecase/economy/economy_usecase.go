package economy

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/lock"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// EconomyUseCase is the balance authority. Every coin balance change in the
// system goes through ApplyCoinDelta; no other code path writes users.coins.
type EconomyUseCase struct {
	userRepo        domain.UserRepository
	economyRepo     domain.EconomyLogRepository
	outboxRepo      domain.OutboxRepository
	db              *gorm.DB
	logger          *logger.Logger
	userLockManager *lock.UserLockManager
}

// NewEconomyUseCase creates a new economy usecase
func NewEconomyUseCase(
	userRepo domain.UserRepository,
	economyRepo domain.EconomyLogRepository,
	outboxRepo domain.OutboxRepository,
	db *gorm.DB,
	logger *logger.Logger,
	userLockManager *lock.UserLockManager,
) domain.EconomyUseCase {
	return &EconomyUseCase{
		userRepo:        userRepo,
		economyRepo:     economyRepo,
		outboxRepo:      outboxRepo,
		db:              db,
		logger:          logger,
		userLockManager: userLockManager,
	}
}

// GetBalance returns the user's current coin balance
func (uc *EconomyUseCase) GetBalance(userID int64) (int64, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return 0, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return 0, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}
	return user.Coins, nil
}

// ListEntries returns the user's ledger entries in creation order
func (uc *EconomyUseCase) ListEntries(userID int64, limit, offset int) ([]*domain.EconomyLogEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	entries, err := uc.economyRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list ledger entries", err)
	}
	return entries, nil
}

// SumForUser returns the sum of all coin deltas ever recorded for the user
func (uc *EconomyUseCase) SumForUser(userID int64) (int64, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return 0, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return 0, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	sum, err := uc.economyRepo.SumByUserID(userID)
	if err != nil {
		return 0, domain.NewDatabaseError("sum ledger entries", err)
	}
	return sum, nil
}

// Reconcile verifies the stored balance against the ledger sum. At any
// quiescent point the two must be equal; a mismatch means a write bypassed
// the balance authority.
func (uc *EconomyUseCase) Reconcile(userID int64) (*domain.ReconciliationReport, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	sum, err := uc.economyRepo.SumByUserID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("sum ledger entries", err)
	}

	report := &domain.ReconciliationReport{
		UserID:    userID,
		Coins:     user.Coins,
		LedgerSum: sum,
		Balanced:  user.Coins == sum,
	}

	if !report.Balanced {
		uc.logger.Error("Ledger does not reconcile with stored balance",
			zap.Int64("user_id", userID),
			zap.Int64("coins", user.Coins),
			zap.Int64("ledger_sum", sum))
	}

	return report, nil
}
