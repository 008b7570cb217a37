package user

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	userRepo domain.UserRepository
	jwtSvc   auth.JWTService
	logger   *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo domain.UserRepository, jwtSvc auth.JWTService, logger *logger.Logger) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		logger:   logger,
	}
}

// CreateUser registers a new account. New users start with zero coins; the
// first balance change, like everything after it, goes through the economy
// use case.
func (uc *UserUseCase) CreateUser(username, email, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Username is required", 400, nil)
	}
	if email == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Email is required", 400, nil)
	}
	if password == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Password is required", 400, nil)
	}

	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, domain.NewDatabaseError("check username", err)
	}
	if existing != nil {
		return nil, domain.NewAppError(domain.ErrCodeUsernameTaken, "Username taken", 422, nil)
	}

	existing, err = uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, domain.NewDatabaseError("check email", err)
	}
	if existing != nil {
		return nil, domain.NewAppError(domain.ErrCodeEmailTaken, "Email taken", 422, nil)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: uc.hashPassword(password),
		Coins:        0,
	}

	if err := uc.userRepo.Create(user); err != nil {
		return nil, domain.NewDatabaseError("create user", err)
	}

	uc.logger.Info("Created user",
		zap.Int64("user_id", user.ID),
		zap.String("username", username))

	return user, nil
}

// Authenticate validates user credentials and returns a JWT token
func (uc *UserUseCase) Authenticate(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return "", domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	if !uc.verifyPassword(password, user.PasswordHash) {
		uc.logger.Warn("Authentication failed",
			zap.Int64("user_id", user.ID),
			zap.String("username", username))
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	token, err := uc.jwtSvc.GenerateToken(strconv.FormatInt(user.ID, 10), user.Username)
	if err != nil {
		return "", domain.NewAppError(domain.ErrCodeTokenInvalid, "Token generation failed", 500, err)
	}

	return token, nil
}

// GetUserInfo retrieves user information by user ID
func (uc *UserUseCase) GetUserInfo(userID int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	return user, nil
}

// hashPassword hashes a password for storage
func (uc *UserUseCase) hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// verifyPassword checks if the provided password matches the stored hash
func (uc *UserUseCase) verifyPassword(password, hashedPassword string) bool {
	return uc.hashPassword(password) == hashedPassword
}
