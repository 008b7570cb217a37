package domain

import (
	"time"

	"gorm.io/gorm"
)

// PlacingDNF is the sentinel placing for a player who did not finish the game.
const PlacingDNF = -1

// IsValidPlacing reports whether p is inside the placing domain: the DNF
// sentinel or a positive finishing rank.
func IsValidPlacing(p int) bool {
	return p == PlacingDNF || p >= 1
}

// GameRound is one user's result in one game instance. Rounds are logically
// immutable once recorded; corrections are new compensating records.
type GameRound struct {
	ID        int64     `json:"round_id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"index;not null;type:bigint"`
	GameID    int64     `json:"game_id" gorm:"index;not null;type:bigint"`
	Points    int64     `json:"points" gorm:"not null"`
	Placing   int       `json:"placing" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Game Game `json:"-" gorm:"foreignKey:GameID"`
}

// TableName specifies the table name for GameRound
func (r GameRound) TableName() string {
	return "game_rounds"
}

// RoundRepository defines the interface for round data. There is no update
// method: recorded results are not edited through this interface.
type RoundRepository interface {
	Create(round *GameRound) error
	GetByID(id int64) (*GameRound, error)
	ListByUser(userID int64, limit, offset int) ([]*GameRound, error)
	ListByGame(gameID int64, limit, offset int) ([]*GameRound, error)
	WithTransaction(tx *gorm.DB) RoundRepository
}

// RoundUseCase records round outcomes
type RoundUseCase interface {
	RecordRound(userID, gameID int64, points int64, placing int) (*GameRound, error)
	ListByUser(userID int64, limit, offset int) ([]*GameRound, error)
	ListByGame(gameID int64, limit, offset int) ([]*GameRound, error)
}
