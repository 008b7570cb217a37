package economy

import (
	"context"

	"github.com/playrummy/ledger/internal/domain"
	"go.uber.org/zap"
)

// ApplyCoinDelta atomically applies a signed coin delta to a user's balance
// and appends the matching economy log entry. Either both writes commit or
// neither does. Concurrent calls for the same user are serialized by the
// per-user lock plus a row-level lock on the user row; calls for different
// users proceed independently.
func (uc *EconomyUseCase) ApplyCoinDelta(ctx context.Context, userID int64, delta int64, reason string) (*domain.EconomyLogEntry, int64, error) {
	if reason == "" {
		return nil, 0, domain.NewAppError(domain.ErrCodeRequiredField, "Reason is required", 400, nil)
	}

	if err := uc.userLockManager.Lock(ctx, userID); err != nil {
		uc.logger.Warn("Could not acquire user lock",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, 0, domain.NewConflictError("Balance is being modified by another operation", err)
	}
	defer uc.userLockManager.Unlock(userID)

	tx := uc.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, 0, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	entry, newBalance, err := uc.applyInTx(
		uc.userRepo.WithTransaction(tx),
		uc.economyRepo.WithTransaction(tx),
		uc.outboxRepo.WithTransaction(tx),
		userID, delta, reason,
	)
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}

	uc.logger.Info("Applied coin delta",
		zap.Int64("user_id", userID),
		zap.Int64("delta", delta),
		zap.Int64("new_balance", newBalance),
		zap.Int64("entry_id", entry.ID))

	return entry, newBalance, nil
}

// applyInTx performs the combined balance update and ledger append against
// transaction-bound repositories. The user row is locked first, then the
// balance is moved with a single `coins = coins + delta` expression, so the
// old balance never round-trips through Go code.
func (uc *EconomyUseCase) applyInTx(
	txUserRepo domain.UserRepository,
	txEconomyRepo domain.EconomyLogRepository,
	txOutboxRepo domain.OutboxRepository,
	userID int64,
	delta int64,
	reason string,
) (*domain.EconomyLogEntry, int64, error) {
	user, err := txUserRepo.GetByIDForUpdate(userID)
	if err != nil {
		return nil, 0, domain.NewDatabaseError("lock user row", err)
	}
	if user == nil {
		return nil, 0, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	newBalance, err := txUserRepo.AddCoins(userID, delta)
	if err != nil {
		return nil, 0, domain.NewDatabaseError("apply coin delta", err)
	}

	entry := &domain.EconomyLogEntry{
		UserID:      userID,
		Reason:      reason,
		CoinsChange: delta,
	}
	if err := txEconomyRepo.Create(entry); err != nil {
		return nil, 0, domain.NewDatabaseError("append ledger entry", err)
	}

	event := &domain.OutboxEvent{
		Type: domain.EventTypeCoinsChanged,
		Data: domain.JSONB{
			"user_id":     userID,
			"delta":       delta,
			"reason":      reason,
			"new_balance": newBalance,
			"entry_id":    entry.ID,
		},
		Status: domain.EventStatusPending,
	}
	if err := txOutboxRepo.Save(event); err != nil {
		return nil, 0, domain.NewDatabaseError("enqueue outbox event", err)
	}

	return entry, newBalance, nil
}
