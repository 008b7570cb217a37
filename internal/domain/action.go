package domain

import (
	"time"

	"gorm.io/gorm"
)

// GameAction is one append-only audit event tied to a user and a game. The
// action type is an open string owned by the calling game logic; this core
// only requires it to be non-empty. Actions are never updated or deleted.
type GameAction struct {
	ID         int64     `json:"action_id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	UserID     int64     `json:"user_id" gorm:"index;not null;type:bigint"`
	GameID     int64     `json:"game_id" gorm:"index;not null;type:bigint"`
	ActionType string    `json:"action_type" gorm:"type:varchar(64);not null"`
	Metadata   JSONB     `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Game Game `json:"-" gorm:"foreignKey:GameID"`
}

// TableName specifies the table name for GameAction
func (a GameAction) TableName() string {
	return "game_actions"
}

// ActionRepository defines the interface for action data. Create is the only
// mutation; reads return entries in insertion order so a game can be
// reconstructed event by event.
type ActionRepository interface {
	Create(action *GameAction) error
	ListByGame(gameID int64, limit, offset int) ([]*GameAction, error)
	ListByUser(userID int64, limit, offset int) ([]*GameAction, error)
	WithTransaction(tx *gorm.DB) ActionRepository
}

// ActionUseCase records and reads the game audit trail
type ActionUseCase interface {
	RecordAction(userID, gameID int64, actionType string, metadata JSONB) (*GameAction, error)
	ListByGame(gameID int64, limit, offset int) ([]*GameAction, error)
	ListByUser(userID int64, limit, offset int) ([]*GameAction, error)
}
