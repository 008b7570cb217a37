package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playrummy/ledger/internal/http/handlers"
	"github.com/playrummy/ledger/internal/http/middleware"
	"github.com/playrummy/ledger/internal/infrastructure/auth"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	router         *gin.Engine
	jwtService     auth.JWTService
	userHandler    *handlers.UserHandler
	economyHandler *handlers.EconomyHandler
	gameHandler    *handlers.GameHandler
	errorHandler   *middleware.ErrorHandler
	port           string
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	economyHandler *handlers.EconomyHandler,
	gameHandler *handlers.GameHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	port string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(gin.Recovery())

	server := &Server{
		router:         router,
		jwtService:     jwtService,
		userHandler:    userHandler,
		economyHandler: economyHandler,
		gameHandler:    gameHandler,
		errorHandler:   errorHandler,
		port:           port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", s.userHandler.Register)
			authRoutes.POST("/login", s.userHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", s.userHandler.GetUserInfo)
				userRoutes.GET("/me/balance", s.economyHandler.GetBalance)
				userRoutes.GET("/me/ledger", s.economyHandler.ListLedger)
				userRoutes.GET("/me/ledger/sum", s.economyHandler.GetLedgerSum)
				userRoutes.GET("/me/rounds", s.gameHandler.ListUserRounds)
			}

			gameRoutes := protected.Group("/games")
			{
				gameRoutes.POST("", s.gameHandler.CreateGame)
				gameRoutes.GET("/:id", s.gameHandler.GetGame)
				gameRoutes.PUT("/:id/metadata", s.gameHandler.UpdateGameMetadata)
				gameRoutes.POST("/:id/rounds", s.gameHandler.RecordRound)
				gameRoutes.GET("/:id/rounds", s.gameHandler.ListGameRounds)
				gameRoutes.POST("/:id/actions", s.gameHandler.RecordAction)
				gameRoutes.GET("/:id/actions", s.gameHandler.ListGameActions)
			}

			economyRoutes := protected.Group("/economy")
			{
				economyRoutes.POST("/adjustments", s.economyHandler.AdjustCoins)
				economyRoutes.GET("/reconcile/:user_id", s.economyHandler.Reconcile)
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.port)
	return s.router.Run(addr)
}
