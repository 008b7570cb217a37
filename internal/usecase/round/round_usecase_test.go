package round

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/domain/mocks"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func createTestUser() *domain.User {
	return &domain.User{
		ID:        123,
		Username:  "test_user",
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func createTestGame() *domain.Game {
	return &domain.Game{
		ID:        7,
		Metadata:  domain.JSONB{"variant": "points"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func newTestUseCase(ctrl *gomock.Controller) (*RoundUseCase, *mocks.MockRoundRepository, *mocks.MockUserRepository, *mocks.MockGameRepository, *mocks.MockOutboxRepository) {
	mockRoundRepo := mocks.NewMockRoundRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockGameRepo := mocks.NewMockGameRepository(ctrl)
	mockOutboxRepo := mocks.NewMockOutboxRepository(ctrl)

	useCase := &RoundUseCase{
		roundRepo:  mockRoundRepo,
		userRepo:   mockUserRepo,
		gameRepo:   mockGameRepo,
		outboxRepo: mockOutboxRepo,
		db:         nil,
		logger:     logger.NewLogger("test", "debug"),
	}
	return useCase, mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo
}

func TestPlacingValidation(t *testing.T) {
	tests := []struct {
		name    string
		placing int
		valid   bool
	}{
		{name: "DNF_Sentinel", placing: -1, valid: true},
		{name: "First_Place", placing: 1, valid: true},
		{name: "Mid_Table", placing: 4, valid: true},
		{name: "Zero_Invalid", placing: 0, valid: false},
		{name: "Negative_Two_Invalid", placing: -2, valid: false},
		{name: "Large_Negative_Invalid", placing: -100, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, domain.IsValidPlacing(tt.placing))
		})
	}
}

func TestRecordRoundRejectsInvalidPlacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, _, _, _, _ := newTestUseCase(ctrl)

	tests := []struct {
		name    string
		placing int
	}{
		{name: "Zero", placing: 0},
		{name: "Negative_Two", placing: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round, err := useCase.RecordRound(123, 7, 85, tt.placing)

			assert.Nil(t, round)
			appErr, ok := domain.IsAppError(err)
			assert.True(t, ok)
			assert.Equal(t, domain.ErrCodeInvalidPlacing, appErr.Code)
			assert.Equal(t, 400, appErr.HTTPStatus)
		})
	}
}

func TestRecordInTxSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo := newTestUseCase(ctrl)

	tests := []struct {
		name    string
		points  int64
		placing int
	}{
		{name: "Winner", points: 120, placing: 1},
		{name: "DNF", points: 0, placing: domain.PlacingDNF},
		{name: "Negative_Points", points: -40, placing: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.EXPECT().GetByID(int64(123)).Return(createTestUser(), nil)
			mockGameRepo.EXPECT().GetByID(int64(7)).Return(createTestGame(), nil)
			mockRoundRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(round *domain.GameRound) error {
				assert.Equal(t, int64(123), round.UserID)
				assert.Equal(t, int64(7), round.GameID)
				assert.Equal(t, tt.points, round.Points)
				assert.Equal(t, tt.placing, round.Placing)
				round.ID = 55
				return nil
			})
			mockOutboxRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(event *domain.OutboxEvent) error {
				assert.Equal(t, domain.EventTypeRoundRecorded, event.Type)
				assert.Equal(t, domain.EventStatusPending, event.Status)
				return nil
			})

			round, err := useCase.recordInTx(mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo, 123, 7, tt.points, tt.placing)

			assert.NoError(t, err)
			assert.Equal(t, int64(55), round.ID)
		})
	}
}

func TestRecordInTxUnknownReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo := newTestUseCase(ctrl)

	t.Run("User_Not_Found", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(int64(999)).Return(nil, nil)

		round, err := useCase.recordInTx(mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo, 999, 7, 85, 1)

		assert.Nil(t, round)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeUserNotFound, appErr.Code)
	})

	t.Run("Game_Not_Found", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(int64(123)).Return(createTestUser(), nil)
		mockGameRepo.EXPECT().GetByID(int64(888)).Return(nil, nil)

		round, err := useCase.recordInTx(mockRoundRepo, mockUserRepo, mockGameRepo, mockOutboxRepo, 123, 888, 85, 1)

		assert.Nil(t, round)
		appErr, ok := domain.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ErrCodeGameNotFound, appErr.Code)
	})
}

func TestListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	useCase, mockRoundRepo, _, _, _ := newTestUseCase(ctrl)

	rounds := []*domain.GameRound{
		{ID: 1, UserID: 123, GameID: 7, Points: 85, Placing: 1},
		{ID: 2, UserID: 123, GameID: 8, Points: 0, Placing: domain.PlacingDNF},
	}

	// limit <= 0 falls back to the default page size
	mockRoundRepo.EXPECT().ListByUser(int64(123), defaultListLimit, 0).Return(rounds, nil)

	result, err := useCase.ListByUser(123, 0, -5)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
}
