package app

import (
	"github.com/playrummy/ledger/internal/config"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger() *logger.Logger {
	return logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
}
