package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a player in the system. The coins column is owned by the
// economy use case: no repository method writes it except AddCoins, which is
// only ever called inside the economy use case's database transaction.
type User struct {
	ID           int64     `json:"user_id" gorm:"primaryKey;column:id;type:bigint;autoIncrement"`
	Username     string    `json:"username" gorm:"not null;type:varchar(64)"`
	Email        string    `json:"email" gorm:"not null;type:varchar(128)"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null;type:varchar(128)"`
	Coins        int64     `json:"coins" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(id int64) (*User, error)
	// GetByIDForUpdate loads the user row with a row-level lock. Only
	// meaningful when the repository is bound to a database transaction.
	GetByIDForUpdate(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	// AddCoins applies `coins = coins + delta` as a single atomic update
	// expression and returns the resulting balance.
	AddCoins(userID int64, delta int64) (int64, error)
	WithTransaction(tx *gorm.DB) UserRepository
}

// UserUseCase defines the interface for user account business logic
type UserUseCase interface {
	CreateUser(username, email, password string) (*User, error)
	Authenticate(username, password string) (string, error)
	GetUserInfo(userID int64) (*User, error)
}
