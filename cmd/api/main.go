// Package main Rummy Ledger API
//
// Rummy Ledger is the coin economy core for our Rummy platform. It owns the
// single write path for user coin balances, the append-only economy log that
// explains every balance, and the per-game record of round results and
// player actions.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer
package main

import (
	"context"

	_ "github.com/playrummy/ledger/docs"
	"github.com/playrummy/ledger/internal/app"
)

// @title Rummy Ledger API Service
// @version 1.0
// @description Rummy Ledger is the coin economy core for the Rummy platform: balance adjustments, the append-only economy log, round results, and the game audit trail.

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
