package app

import (
	"github.com/playrummy/ledger/internal/infrastructure/lock"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
)

func (a *application) InitUserLockManager(logger *logger.Logger) *lock.UserLockManager {
	return lock.NewUserLockManager(logger)
}
