package repository

import (
	"errors"

	"github.com/playrummy/ledger/internal/domain"

	"gorm.io/gorm"
)

// RoundRepository implements domain.RoundRepository
type RoundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *gorm.DB) domain.RoundRepository {
	return &RoundRepository{db: db}
}

// WithTransaction returns a repository bound to the given database transaction
func (r *RoundRepository) WithTransaction(tx *gorm.DB) domain.RoundRepository {
	return &RoundRepository{db: tx}
}

// Create records a round result
func (r *RoundRepository) Create(round *domain.GameRound) error {
	return r.db.Create(round).Error
}

// GetByID retrieves a round by ID
func (r *RoundRepository) GetByID(id int64) (*domain.GameRound, error) {
	var round domain.GameRound
	result := r.db.Where("id = ?", id).First(&round)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &round, nil
}

// ListByUser retrieves rounds for a user in creation order with pagination
func (r *RoundRepository) ListByUser(userID int64, limit, offset int) ([]*domain.GameRound, error) {
	var rounds []*domain.GameRound
	result := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rounds)

	if result.Error != nil {
		return nil, result.Error
	}

	return rounds, nil
}

// ListByGame retrieves rounds for a game in creation order with pagination
func (r *RoundRepository) ListByGame(gameID int64, limit, offset int) ([]*domain.GameRound, error) {
	var rounds []*domain.GameRound
	result := r.db.Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rounds)

	if result.Error != nil {
		return nil, result.Error
	}

	return rounds, nil
}
