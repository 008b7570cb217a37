package user

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/playrummy/ledger/internal/config"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/domain/mocks"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestUseCase(ctrl *gomock.Controller) (*UserUseCase, *mocks.MockUserRepository) {
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	jwtSvc := auth.NewJWTService(&config.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
	})

	useCase := &UserUseCase{
		userRepo: mockUserRepo,
		jwtSvc:   jwtSvc,
		logger:   logger.NewLogger("test", "debug"),
	}
	return useCase, mockUserRepo
}

func TestCreateUserStartsWithZeroCoins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo := newTestUseCase(ctrl)

	mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, nil)
	mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(nil, nil)
	mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *domain.User) error {
		assert.Equal(t, int64(0), user.Coins)
		assert.NotEqual(t, "password123", user.PasswordHash)
		user.ID = 1
		return nil
	})

	user, err := useCase.CreateUser("alice", "alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(0), user.Coins)
}

func TestCreateUserValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, _ := newTestUseCase(ctrl)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "Empty_Username", username: "", email: "a@example.com", password: "pw"},
		{name: "Empty_Email", username: "alice", email: "", password: "pw"},
		{name: "Empty_Password", username: "alice", email: "a@example.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := useCase.CreateUser(tt.username, tt.email, tt.password)

			assert.Nil(t, user)
			appErr, ok := domain.IsAppError(err)
			assert.True(t, ok)
			assert.Equal(t, domain.ErrCodeRequiredField, appErr.Code)
		})
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo := newTestUseCase(ctrl)

	t.Run("Username_Taken", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByUsername("alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

		user, err := useCase.CreateUser("alice", "other@example.com", "pw")

		assert.Nil(t, user)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeUsernameTaken, appErr.Code)
		assert.Equal(t, 422, appErr.HTTPStatus)
	})

	t.Run("Email_Taken", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByUsername("bob").Return(nil, nil)
		mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(&domain.User{ID: 1, Email: "alice@example.com"}, nil)

		user, err := useCase.CreateUser("bob", "alice@example.com", "pw")

		assert.Nil(t, user)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeEmailTaken, appErr.Code)
		assert.Equal(t, 422, appErr.HTTPStatus)
	})
}

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo := newTestUseCase(ctrl)

	storedUser := &domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: useCase.hashPassword("password123"),
	}

	t.Run("Valid_Credentials", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByUsername("alice").Return(storedUser, nil)

		token, err := useCase.Authenticate("alice", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Wrong_Password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByUsername("alice").Return(storedUser, nil)

		token, err := useCase.Authenticate("alice", "wrong")

		assert.Empty(t, token)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeInvalidCredentials, appErr.Code)
	})

	t.Run("Unknown_User", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByUsername("mallory").Return(nil, nil)

		token, err := useCase.Authenticate("mallory", "pw")

		assert.Empty(t, token)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeInvalidCredentials, appErr.Code)
	})
}

func TestPasswordHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, _ := newTestUseCase(ctrl)

	hash := useCase.hashPassword("password123")

	assert.NotEqual(t, "password123", hash)
	assert.True(t, useCase.verifyPassword("password123", hash))
	assert.False(t, useCase.verifyPassword("password124", hash))
}
