package repository

import (
	"errors"

	"github.com/playrummy/ledger/internal/domain"

	"gorm.io/gorm"
)

// GameRepository implements domain.GameRepository
type GameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *gorm.DB) domain.GameRepository {
	return &GameRepository{db: db}
}

// WithTransaction returns a repository bound to the given database transaction
func (r *GameRepository) WithTransaction(tx *gorm.DB) domain.GameRepository {
	return &GameRepository{db: tx}
}

// Create creates a new game
func (r *GameRepository) Create(game *domain.Game) error {
	return r.db.Create(game).Error
}

// GetByID retrieves a game by ID
func (r *GameRepository) GetByID(id int64) (*domain.Game, error) {
	var game domain.Game
	result := r.db.Where("id = ?", id).First(&game)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &game, nil
}

// UpdateMetadata replaces the metadata blob, the only mutable game field
func (r *GameRepository) UpdateMetadata(id int64, metadata domain.JSONB) error {
	return r.db.Model(&domain.Game{}).
		Where("id = ?", id).
		Update("metadata", metadata).Error
}
