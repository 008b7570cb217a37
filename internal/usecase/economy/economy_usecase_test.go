package economy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/domain/mocks"
	"github.com/playrummy/ledger/internal/infrastructure/lock"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func createTestUser(coins int64) *domain.User {
	return &domain.User{
		ID:        123,
		Username:  "test_user",
		Email:     "test@example.com",
		Coins:     coins,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func newTestUseCase(ctrl *gomock.Controller) (*EconomyUseCase, *mocks.MockUserRepository, *mocks.MockEconomyLogRepository, *mocks.MockOutboxRepository) {
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockEconomyRepo := mocks.NewMockEconomyLogRepository(ctrl)
	mockOutboxRepo := mocks.NewMockOutboxRepository(ctrl)
	newLogger := logger.NewLogger("test", "debug")

	useCase := &EconomyUseCase{
		userRepo:        mockUserRepo,
		economyRepo:     mockEconomyRepo,
		outboxRepo:      mockOutboxRepo,
		db:              nil,
		logger:          newLogger,
		userLockManager: lock.NewUserLockManager(newLogger),
	}
	return useCase, mockUserRepo, mockEconomyRepo, mockOutboxRepo
}

func TestApplyCoinDeltaRequiresReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, _, _, _ := newTestUseCase(ctrl)

	entry, balance, err := useCase.ApplyCoinDelta(context.Background(), 123, 50, "")

	assert.Nil(t, entry)
	assert.Zero(t, balance)
	appErr, ok := domain.IsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ErrCodeRequiredField, appErr.Code)
}

func TestApplyInTxSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, mockEconomyRepo, mockOutboxRepo := newTestUseCase(ctrl)

	tests := []struct {
		name       string
		delta      int64
		reason     string
		newBalance int64
	}{
		{
			name:       "Positive_Delta",
			delta:      50,
			reason:     "round winnings",
			newBalance: 50,
		},
		{
			name:       "Negative_Delta",
			delta:      -20,
			reason:     "round buy-in",
			newBalance: 30,
		},
		{
			name:       "Zero_Delta",
			delta:      0,
			reason:     "manual correction",
			newBalance: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.EXPECT().GetByIDForUpdate(int64(123)).Return(createTestUser(0), nil)
			mockUserRepo.EXPECT().AddCoins(int64(123), tt.delta).Return(tt.newBalance, nil)
			mockEconomyRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(entry *domain.EconomyLogEntry) error {
				assert.Equal(t, int64(123), entry.UserID)
				assert.Equal(t, tt.delta, entry.CoinsChange)
				assert.Equal(t, tt.reason, entry.Reason)
				entry.ID = 456
				return nil
			})
			mockOutboxRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(event *domain.OutboxEvent) error {
				assert.Equal(t, domain.EventTypeCoinsChanged, event.Type)
				assert.Equal(t, domain.EventStatusPending, event.Status)
				assert.Equal(t, tt.newBalance, event.Data["new_balance"])
				return nil
			})

			entry, balance, err := useCase.applyInTx(mockUserRepo, mockEconomyRepo, mockOutboxRepo, 123, tt.delta, tt.reason)

			assert.NoError(t, err)
			assert.Equal(t, tt.newBalance, balance)
			assert.Equal(t, int64(456), entry.ID)
			assert.Equal(t, tt.delta, entry.CoinsChange)
		})
	}
}

func TestApplyInTxUserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, mockEconomyRepo, mockOutboxRepo := newTestUseCase(ctrl)

	mockUserRepo.EXPECT().GetByIDForUpdate(int64(999)).Return(nil, nil)

	entry, balance, err := useCase.applyInTx(mockUserRepo, mockEconomyRepo, mockOutboxRepo, 999, 50, "round winnings")

	assert.Nil(t, entry)
	assert.Zero(t, balance)
	appErr, ok := domain.IsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ErrCodeUserNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

func TestApplyInTxLedgerWriteFailureAbortsBalanceChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, mockEconomyRepo, mockOutboxRepo := newTestUseCase(ctrl)

	mockUserRepo.EXPECT().GetByIDForUpdate(int64(123)).Return(createTestUser(100), nil)
	mockUserRepo.EXPECT().AddCoins(int64(123), int64(-20)).Return(int64(80), nil)
	mockEconomyRepo.EXPECT().Create(gomock.Any()).Return(errors.New("insert failed"))

	entry, _, err := useCase.applyInTx(mockUserRepo, mockEconomyRepo, mockOutboxRepo, 123, -20, "round buy-in")

	assert.Nil(t, entry)
	appErr, ok := domain.IsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ErrCodeDatabaseQuery, appErr.Code)
}

func TestGetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, _, _ := newTestUseCase(ctrl)

	tests := []struct {
		name        string
		user        *domain.User
		expectError bool
		expected    int64
	}{
		{
			name:     "User_Exists",
			user:     createTestUser(30),
			expected: 30,
		},
		{
			name:        "User_Not_Found",
			user:        nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.EXPECT().GetByID(int64(123)).Return(tt.user, nil)

			balance, err := useCase.GetBalance(123)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, balance)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, mockEconomyRepo, _ := newTestUseCase(ctrl)

	tests := []struct {
		name      string
		coins     int64
		ledgerSum int64
		balanced  bool
	}{
		{
			name:      "Balanced",
			coins:     30,
			ledgerSum: 30,
			balanced:  true,
		},
		{
			name:      "Mismatch",
			coins:     30,
			ledgerSum: 50,
			balanced:  false,
		},
		{
			name:      "Zero_Balance_No_Entries",
			coins:     0,
			ledgerSum: 0,
			balanced:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.EXPECT().GetByID(int64(123)).Return(createTestUser(tt.coins), nil)
			mockEconomyRepo.EXPECT().SumByUserID(int64(123)).Return(tt.ledgerSum, nil)

			report, err := useCase.Reconcile(123)

			assert.NoError(t, err)
			assert.Equal(t, tt.coins, report.Coins)
			assert.Equal(t, tt.ledgerSum, report.LedgerSum)
			assert.Equal(t, tt.balanced, report.Balanced)
		})
	}
}

func TestSumForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockUserRepo, mockEconomyRepo, _ := newTestUseCase(ctrl)

	mockUserRepo.EXPECT().GetByID(int64(123)).Return(createTestUser(30), nil)
	mockEconomyRepo.EXPECT().SumByUserID(int64(123)).Return(int64(30), nil)

	sum, err := useCase.SumForUser(123)

	assert.NoError(t, err)
	assert.Equal(t, int64(30), sum)
}
