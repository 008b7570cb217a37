package app

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
	"github.com/playrummy/ledger/internal/infrastructure/lock"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/playrummy/ledger/internal/usecase/action"
	"github.com/playrummy/ledger/internal/usecase/economy"
	"github.com/playrummy/ledger/internal/usecase/game"
	"github.com/playrummy/ledger/internal/usecase/round"
	"github.com/playrummy/ledger/internal/usecase/user"
	"gorm.io/gorm"
)

func (a *application) InitUserUseCase(ur domain.UserRepository, jwt auth.JWTService, logger *logger.Logger) domain.UserUseCase {
	return user.NewUserUseCase(ur, jwt, logger)
}

func (a *application) InitEconomyUseCase(
	ur domain.UserRepository,
	er domain.EconomyLogRepository,
	or domain.OutboxRepository,
	db *gorm.DB,
	logger *logger.Logger,
	lm *lock.UserLockManager,
) domain.EconomyUseCase {
	return economy.NewEconomyUseCase(ur, er, or, db, logger, lm)
}

func (a *application) InitRoundUseCase(
	rr domain.RoundRepository,
	ur domain.UserRepository,
	gr domain.GameRepository,
	or domain.OutboxRepository,
	db *gorm.DB,
	logger *logger.Logger,
) domain.RoundUseCase {
	return round.NewRoundUseCase(rr, ur, gr, or, db, logger)
}

func (a *application) InitActionUseCase(
	ar domain.ActionRepository,
	ur domain.UserRepository,
	gr domain.GameRepository,
	logger *logger.Logger,
) domain.ActionUseCase {
	return action.NewActionUseCase(ar, ur, gr, logger)
}

func (a *application) InitGameUseCase(gr domain.GameRepository, logger *logger.Logger) domain.GameUseCase {
	return game.NewGameUseCase(gr, logger)
}
