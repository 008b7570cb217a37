package domain

import (
	"time"

	"gorm.io/gorm"
)

// Game represents one game instance. Immutable once created except for the
// metadata blob, which describes variant and table settings.
type Game struct {
	ID        int64     `json:"game_id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	Metadata  JSONB     `json:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for Game
func (g Game) TableName() string {
	return "games"
}

// GameRepository defines the interface for game data
type GameRepository interface {
	Create(game *Game) error
	GetByID(id int64) (*Game, error)
	UpdateMetadata(id int64, metadata JSONB) error
	WithTransaction(tx *gorm.DB) GameRepository
}

// GameUseCase defines the interface for game lifecycle business logic
type GameUseCase interface {
	CreateGame(metadata JSONB) (*Game, error)
	GetGame(id int64) (*Game, error)
	UpdateGameMetadata(id int64, metadata JSONB) (*Game, error)
}
