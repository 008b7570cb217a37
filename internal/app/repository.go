package app

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewUserRepository(db)
}

func (a *application) InitGameRepository(db *gorm.DB) domain.GameRepository {
	return repository.NewGameRepository(db)
}

func (a *application) InitRoundRepository(db *gorm.DB) domain.RoundRepository {
	return repository.NewRoundRepository(db)
}

func (a *application) InitActionRepository(db *gorm.DB) domain.ActionRepository {
	return repository.NewActionRepository(db)
}

func (a *application) InitEconomyLogRepository(db *gorm.DB) domain.EconomyLogRepository {
	return repository.NewEconomyLogRepository(db)
}

func (a *application) InitOutboxRepository(db *gorm.DB) domain.OutboxRepository {
	return repository.NewOutboxRepository(db)
}
