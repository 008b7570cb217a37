package app

import (
	"context"
	"fmt"

	"github.com/playrummy/ledger/internal/http"
	"github.com/playrummy/ledger/internal/http/handlers"
	"github.com/playrummy/ledger/internal/http/middleware"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/fx"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	economyHandler *handlers.EconomyHandler,
	gameHandler *handlers.GameHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	port := a.config.Server.Port
	if port == "" {
		port = "8080" // default port
	}

	return http.NewServer(jwtService, userHandler, economyHandler, gameHandler, errorHandler, log, port)
}

// StartHTTPServer runs the server in the fx lifecycle
func (a *application) StartHTTPServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					fmt.Printf("[x] HTTP server stopped: %v\n", err)
				}
			}()
			return nil
		},
	})
}
