package app

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/http/handlers"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
)

func (a *application) InitUserHandler(uc domain.UserUseCase, jwt auth.JWTService) *handlers.UserHandler {
	return handlers.NewUserHandler(uc, jwt)
}

func (a *application) InitEconomyHandler(ec domain.EconomyUseCase) *handlers.EconomyHandler {
	return handlers.NewEconomyHandler(ec)
}

func (a *application) InitGameHandler(gc domain.GameUseCase, rc domain.RoundUseCase, ac domain.ActionUseCase) *handlers.GameHandler {
	return handlers.NewGameHandler(gc, rc, ac)
}
