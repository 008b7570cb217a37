package repository

import (
	"github.com/playrummy/ledger/internal/domain"

	"gorm.io/gorm"
)

// ActionRepository implements domain.ActionRepository. Like the economy log,
// game actions are append-only: no update or delete operation exists.
type ActionRepository struct {
	db *gorm.DB
}

// NewActionRepository creates a new action repository
func NewActionRepository(db *gorm.DB) domain.ActionRepository {
	return &ActionRepository{db: db}
}

// WithTransaction returns a repository bound to the given database transaction
func (r *ActionRepository) WithTransaction(tx *gorm.DB) domain.ActionRepository {
	return &ActionRepository{db: tx}
}

// Create appends an action to the audit trail
func (r *ActionRepository) Create(action *domain.GameAction) error {
	return r.db.Create(action).Error
}

// ListByGame retrieves a game's actions in insertion order with pagination
func (r *ActionRepository) ListByGame(gameID int64, limit, offset int) ([]*domain.GameAction, error) {
	var actions []*domain.GameAction
	result := r.db.Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&actions)

	if result.Error != nil {
		return nil, result.Error
	}

	return actions, nil
}

// ListByUser retrieves a user's actions in insertion order with pagination
func (r *ActionRepository) ListByUser(userID int64, limit, offset int) ([]*domain.GameAction, error) {
	var actions []*domain.GameAction
	result := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&actions)

	if result.Error != nil {
		return nil, result.Error
	}

	return actions, nil
}
