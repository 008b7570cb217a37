package app

import (
	"github.com/playrummy/ledger/internal/http/middleware"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log)
}
