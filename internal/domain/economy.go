package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// EconomyLogEntry is one append-only record of a coin balance change: the
// signed delta that was applied and the free-text reason it was applied for.
// For every user, the sum of coins_change over their entries equals the
// current coins balance.
type EconomyLogEntry struct {
	ID          int64     `json:"entry_id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	UserID      int64     `json:"user_id" gorm:"index;not null;type:bigint"`
	Reason      string    `json:"reason" gorm:"type:text;not null"`
	CoinsChange int64     `json:"coins_change" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for EconomyLogEntry
func (e EconomyLogEntry) TableName() string {
	return "economy_log"
}

// EconomyLogRepository is the ledger store. Create is the only mutation;
// entries are never updated or deleted.
type EconomyLogRepository interface {
	Create(entry *EconomyLogEntry) error
	// GetByUserID returns entries in creation order (created_at, id
	// ascending) with offset pagination, so reads are restartable.
	GetByUserID(userID int64, limit, offset int) ([]*EconomyLogEntry, error)
	// SumByUserID returns the sum of coins_change over all of the user's
	// entries, used for reconciliation against users.coins.
	SumByUserID(userID int64) (int64, error)
	WithTransaction(tx *gorm.DB) EconomyLogRepository
}

// ReconciliationReport is the result of checking a user's stored balance
// against the sum of their ledger entries.
type ReconciliationReport struct {
	UserID    int64 `json:"user_id"`
	Coins     int64 `json:"coins"`
	LedgerSum int64 `json:"ledger_sum"`
	Balanced  bool  `json:"balanced"`
}

// EconomyUseCase is the balance authority: the single code path allowed to
// change a user's coin balance.
type EconomyUseCase interface {
	// ApplyCoinDelta atomically adjusts the user's balance and appends the
	// matching ledger entry. The returned entry carries the entry ID; the
	// returned int64 is the balance after the change.
	ApplyCoinDelta(ctx context.Context, userID int64, delta int64, reason string) (*EconomyLogEntry, int64, error)
	GetBalance(userID int64) (int64, error)
	ListEntries(userID int64, limit, offset int) ([]*EconomyLogEntry, error)
	SumForUser(userID int64) (int64, error)
	Reconcile(userID int64) (*ReconciliationReport, error)
}
