package game

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// GameUseCase implements domain.GameUseCase
type GameUseCase struct {
	gameRepo domain.GameRepository
	logger   *logger.Logger
}

// NewGameUseCase creates a new game usecase
func NewGameUseCase(gameRepo domain.GameRepository, logger *logger.Logger) domain.GameUseCase {
	return &GameUseCase{
		gameRepo: gameRepo,
		logger:   logger,
	}
}

// CreateGame creates a new game instance with the given variant metadata
func (uc *GameUseCase) CreateGame(metadata domain.JSONB) (*domain.Game, error) {
	game := &domain.Game{Metadata: metadata}
	if err := uc.gameRepo.Create(game); err != nil {
		return nil, domain.NewDatabaseError("create game", err)
	}

	uc.logger.Info("Created game", zap.Int64("game_id", game.ID))
	return game, nil
}

// GetGame retrieves a game by ID
func (uc *GameUseCase) GetGame(id int64) (*domain.Game, error) {
	game, err := uc.gameRepo.GetByID(id)
	if err != nil {
		return nil, domain.NewDatabaseError("get game", err)
	}
	if game == nil {
		return nil, domain.NewAppError(domain.ErrCodeGameNotFound, "Game not found", 404, nil)
	}
	return game, nil
}

// UpdateGameMetadata replaces the game's metadata blob, the only field that
// stays mutable after creation.
func (uc *GameUseCase) UpdateGameMetadata(id int64, metadata domain.JSONB) (*domain.Game, error) {
	game, err := uc.gameRepo.GetByID(id)
	if err != nil {
		return nil, domain.NewDatabaseError("get game", err)
	}
	if game == nil {
		return nil, domain.NewAppError(domain.ErrCodeGameNotFound, "Game not found", 404, nil)
	}

	if err := uc.gameRepo.UpdateMetadata(id, metadata); err != nil {
		return nil, domain.NewDatabaseError("update game metadata", err)
	}

	game.Metadata = metadata
	return game, nil
}
