package round

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// RoundUseCase records round outcomes. A recorded round is never edited;
// corrections are modeled as new compensating records by policy.
type RoundUseCase struct {
	roundRepo  domain.RoundRepository
	userRepo   domain.UserRepository
	gameRepo   domain.GameRepository
	outboxRepo domain.OutboxRepository
	db         *gorm.DB
	logger     *logger.Logger
}

// NewRoundUseCase creates a new round usecase
func NewRoundUseCase(
	roundRepo domain.RoundRepository,
	userRepo domain.UserRepository,
	gameRepo domain.GameRepository,
	outboxRepo domain.OutboxRepository,
	db *gorm.DB,
	logger *logger.Logger,
) domain.RoundUseCase {
	return &RoundUseCase{
		roundRepo:  roundRepo,
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		outboxRepo: outboxRepo,
		db:         db,
		logger:     logger,
	}
}

// RecordRound validates and records one user's result in one game instance
func (uc *RoundUseCase) RecordRound(userID, gameID int64, points int64, placing int) (*domain.GameRound, error) {
	if !domain.IsValidPlacing(placing) {
		return nil, domain.NewAppError(domain.ErrCodeInvalidPlacing,
			"Placing must be -1 (did not finish) or a positive rank", 400, nil)
	}

	tx := uc.db.Begin()
	if tx.Error != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	round, err := uc.recordInTx(
		uc.roundRepo.WithTransaction(tx),
		uc.userRepo.WithTransaction(tx),
		uc.gameRepo.WithTransaction(tx),
		uc.outboxRepo.WithTransaction(tx),
		userID, gameID, points, placing,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}

	uc.logger.Info("Recorded round result",
		zap.Int64("round_id", round.ID),
		zap.Int64("user_id", userID),
		zap.Int64("game_id", gameID),
		zap.Int64("points", points),
		zap.Int("placing", placing))

	return round, nil
}

// recordInTx performs the existence checks and the insert against
// transaction-bound repositories.
func (uc *RoundUseCase) recordInTx(
	txRoundRepo domain.RoundRepository,
	txUserRepo domain.UserRepository,
	txGameRepo domain.GameRepository,
	txOutboxRepo domain.OutboxRepository,
	userID, gameID int64,
	points int64,
	placing int,
) (*domain.GameRound, error) {
	user, err := txUserRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	game, err := txGameRepo.GetByID(gameID)
	if err != nil {
		return nil, domain.NewDatabaseError("get game", err)
	}
	if game == nil {
		return nil, domain.NewAppError(domain.ErrCodeGameNotFound, "Game not found", 404, nil)
	}

	round := &domain.GameRound{
		UserID:  userID,
		GameID:  gameID,
		Points:  points,
		Placing: placing,
	}
	if err := txRoundRepo.Create(round); err != nil {
		return nil, domain.NewDatabaseError("record round", err)
	}

	event := &domain.OutboxEvent{
		Type: domain.EventTypeRoundRecorded,
		Data: domain.JSONB{
			"round_id": round.ID,
			"user_id":  userID,
			"game_id":  gameID,
			"points":   points,
			"placing":  placing,
		},
		Status: domain.EventStatusPending,
	}
	if err := txOutboxRepo.Save(event); err != nil {
		return nil, domain.NewDatabaseError("enqueue outbox event", err)
	}

	return round, nil
}

// ListByUser returns a user's recorded rounds in creation order
func (uc *RoundUseCase) ListByUser(userID int64, limit, offset int) ([]*domain.GameRound, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rounds, err := uc.roundRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list rounds", err)
	}
	return rounds, nil
}

// ListByGame returns a game's recorded rounds in creation order
func (uc *RoundUseCase) ListByGame(gameID int64, limit, offset int) ([]*domain.GameRound, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rounds, err := uc.roundRepo.ListByGame(gameID, limit, offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list rounds", err)
	}
	return rounds, nil
}
