package repository

import (
	"errors"

	"github.com/playrummy/ledger/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements domain.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// WithTransaction returns a repository bound to the given database transaction
func (r *UserRepository) WithTransaction(tx *gorm.DB) domain.UserRepository {
	return &UserRepository{db: tx}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	var user domain.User
	result := r.db.Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByIDForUpdate retrieves a user by ID holding a row-level lock until the
// surrounding transaction commits or rolls back.
func (r *UserRepository) GetByIDForUpdate(id int64) (*domain.User, error) {
	var user domain.User
	result := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByUsername retrieves a user by username, case-insensitively
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	var user domain.User
	result := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	result := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// Update updates a user's account fields. The coins column is deliberately
// excluded: balance changes go through AddCoins only.
func (r *UserRepository) Update(user *domain.User) error {
	return r.db.Model(user).
		Omit("coins").
		Updates(map[string]interface{}{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		}).Error
}

// AddCoins applies the delta with a single atomic update expression and
// returns the resulting balance. The old balance is never read into Go code,
// so two concurrent callers cannot lose an update.
func (r *UserRepository) AddCoins(userID int64, delta int64) (int64, error) {
	user := domain.User{ID: userID}
	result := r.db.Model(&user).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "coins"}}}).
		Update("coins", gorm.Expr("coins + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return user.Coins, nil
}
