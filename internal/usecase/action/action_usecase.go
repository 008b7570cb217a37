package action

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultListLimit = 50

// ActionUseCase records and reads the game audit trail. The set of legal
// action types is owned by the calling game logic; this layer only requires
// the type to be non-empty.
type ActionUseCase struct {
	actionRepo domain.ActionRepository
	userRepo   domain.UserRepository
	gameRepo   domain.GameRepository
	logger     *logger.Logger
}

// NewActionUseCase creates a new action usecase
func NewActionUseCase(
	actionRepo domain.ActionRepository,
	userRepo domain.UserRepository,
	gameRepo domain.GameRepository,
	logger *logger.Logger,
) domain.ActionUseCase {
	return &ActionUseCase{
		actionRepo: actionRepo,
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		logger:     logger,
	}
}

// RecordAction appends an audit event for a user's action in a game
func (uc *ActionUseCase) RecordAction(userID, gameID int64, actionType string, metadata domain.JSONB) (*domain.GameAction, error) {
	if actionType == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Action type is required", 400, nil)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	game, err := uc.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, domain.NewDatabaseError("get game", err)
	}
	if game == nil {
		return nil, domain.NewAppError(domain.ErrCodeGameNotFound, "Game not found", 404, nil)
	}

	action := &domain.GameAction{
		UserID:     userID,
		GameID:     gameID,
		ActionType: actionType,
		Metadata:   metadata,
	}
	if err := uc.actionRepo.Create(action); err != nil {
		return nil, domain.NewDatabaseError("record action", err)
	}

	uc.logger.Debug("Recorded game action",
		zap.Int64("action_id", action.ID),
		zap.Int64("user_id", userID),
		zap.Int64("game_id", gameID),
		zap.String("action_type", actionType))

	return action, nil
}

// ListByGame returns a game's audit trail in insertion order
func (uc *ActionUseCase) ListByGame(gameID int64, limit, offset int) ([]*domain.GameAction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	game, err := uc.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, domain.NewDatabaseError("get game", err)
	}
	if game == nil {
		return nil, domain.NewAppError(domain.ErrCodeGameNotFound, "Game not found", 404, nil)
	}

	actions, err := uc.actionRepo.ListByGame(gameID, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list actions", err)
	}
	return actions, nil
}

// ListByUser returns a user's audit trail in insertion order
func (uc *ActionUseCase) ListByUser(userID int64, limit, offset int) ([]*domain.GameAction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	actions, err := uc.actionRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list actions", err)
	}
	return actions, nil
}
