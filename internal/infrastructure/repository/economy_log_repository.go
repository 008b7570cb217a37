package repository

import (
	"github.com/playrummy/ledger/internal/domain"

	"gorm.io/gorm"
)

// EconomyLogRepository implements domain.EconomyLogRepository. The ledger is
// append-only: this type exposes no update or delete operation.
type EconomyLogRepository struct {
	db *gorm.DB
}

// NewEconomyLogRepository creates a new economy log repository
func NewEconomyLogRepository(db *gorm.DB) domain.EconomyLogRepository {
	return &EconomyLogRepository{db: db}
}

// WithTransaction returns a repository bound to the given database transaction
func (r *EconomyLogRepository) WithTransaction(tx *gorm.DB) domain.EconomyLogRepository {
	return &EconomyLogRepository{db: tx}
}

// Create appends a ledger entry
func (r *EconomyLogRepository) Create(entry *domain.EconomyLogEntry) error {
	return r.db.Create(entry).Error
}

// GetByUserID retrieves a user's ledger entries in creation order with
// pagination. The id tiebreak keeps the order stable for entries created in
// the same instant.
func (r *EconomyLogRepository) GetByUserID(userID int64, limit, offset int) ([]*domain.EconomyLogEntry, error) {
	var entries []*domain.EconomyLogEntry
	result := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// SumByUserID returns the sum of all coin deltas recorded for a user
func (r *EconomyLogRepository) SumByUserID(userID int64) (int64, error) {
	var sum int64
	result := r.db.Model(&domain.EconomyLogEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(coins_change), 0)").
		Scan(&sum)

	if result.Error != nil {
		return 0, result.Error
	}

	return sum, nil
}
