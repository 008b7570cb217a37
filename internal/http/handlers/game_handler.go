package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playrummy/ledger/internal/domain"
)

// GameHandler handles HTTP requests for games, rounds, and game actions
type GameHandler struct {
	gameUseCase   domain.GameUseCase
	roundUseCase  domain.RoundUseCase
	actionUseCase domain.ActionUseCase
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameUseCase domain.GameUseCase, roundUseCase domain.RoundUseCase, actionUseCase domain.ActionUseCase) *GameHandler {
	return &GameHandler{
		gameUseCase:   gameUseCase,
		roundUseCase:  roundUseCase,
		actionUseCase: actionUseCase,
	}
}

// CreateGameRequest represents a game creation request
type CreateGameRequest struct {
	Metadata domain.JSONB `json:"metadata"`
}

// UpdateGameMetadataRequest represents a game metadata update request
type UpdateGameMetadataRequest struct {
	Metadata domain.JSONB `json:"metadata" binding:"required"`
}

// RecordRoundRequest represents a round result
type RecordRoundRequest struct {
	UserID  int64 `json:"user_id" binding:"required" example:"123"`
	Points  int64 `json:"points" example:"85"`
	Placing int   `json:"placing" binding:"required" example:"1"`
}

// RecordActionRequest represents a game action to record
type RecordActionRequest struct {
	UserID     int64        `json:"user_id" binding:"required" example:"123"`
	ActionType string       `json:"action_type" binding:"required" example:"draw_card"`
	Metadata   domain.JSONB `json:"metadata,omitempty"`
}

// CreateGame creates a new game instance
// @Summary Create a game
// @Tags games
// @Accept json
// @Produce json
// @Param request body CreateGameRequest true "Game metadata"
// @Success 201 {object} domain.Game
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	game, err := h.gameUseCase.CreateGame(req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// GetGame returns a game by ID
// @Summary Get a game
// @Tags games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} domain.Game
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := h.gameUseCase.GetGame(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// UpdateGameMetadata replaces a game's metadata blob
// @Summary Update game metadata
// @Tags games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param request body UpdateGameMetadataRequest true "New metadata"
// @Success 200 {object} domain.Game
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id}/metadata [put]
func (h *GameHandler) UpdateGameMetadata(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateGameMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	game, err := h.gameUseCase.UpdateGameMetadata(gameID, req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// RecordRound records one user's result in a game
// @Summary Record a round result
// @Description Placing must be -1 (did not finish) or a rank of 1 or higher
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param request body RecordRoundRequest true "Round result"
// @Success 201 {object} domain.GameRound
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id}/rounds [post]
func (h *GameHandler) RecordRound(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RecordRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	round, err := h.roundUseCase.RecordRound(req.UserID, gameID, req.Points, req.Placing)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, round)
}

// ListGameRounds returns the rounds recorded for a game
// @Summary List rounds for a game
// @Tags rounds
// @Produce json
// @Param id path int true "Game ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.GameRound
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id}/rounds [get]
func (h *GameHandler) ListGameRounds(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	rounds, err := h.roundUseCase.ListByGame(gameID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rounds)
}

// ListUserRounds returns the authenticated user's recorded rounds
// @Summary List own rounds
// @Tags rounds
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.GameRound
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/rounds [get]
func (h *GameHandler) ListUserRounds(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	rounds, err := h.roundUseCase.ListByUser(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rounds)
}

// RecordAction appends an entry to a game's audit trail
// @Summary Record a game action
// @Description Append an audit event; the action type is an open string owned by the calling game logic
// @Tags actions
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param request body RecordActionRequest true "Action details"
// @Success 201 {object} domain.GameAction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id}/actions [post]
func (h *GameHandler) RecordAction(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	action, err := h.actionUseCase.RecordAction(req.UserID, gameID, req.ActionType, req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, action)
}

// ListGameActions returns a game's audit trail in insertion order
// @Summary List actions for a game
// @Tags actions
// @Produce json
// @Param id path int true "Game ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.GameAction
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /games/{id}/actions [get]
func (h *GameHandler) ListGameActions(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	actions, err := h.actionUseCase.ListByGame(gameID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, actions)
}
