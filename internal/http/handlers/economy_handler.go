package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playrummy/ledger/internal/domain"
)

// maxAdjustAttempts bounds the retry loop when a coin adjustment loses the
// per-user lock race.
const maxAdjustAttempts = 3

// EconomyHandler handles HTTP requests for coin balances and the economy log
type EconomyHandler struct {
	economyUseCase domain.EconomyUseCase
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(economyUseCase domain.EconomyUseCase) *EconomyHandler {
	return &EconomyHandler{
		economyUseCase: economyUseCase,
	}
}

// AdjustCoinsRequest represents a coin balance adjustment request. Delta is a
// pointer so that a zero delta still passes the required check.
type AdjustCoinsRequest struct {
	UserID int64  `json:"user_id" binding:"required" example:"123"`
	Delta  *int64 `json:"delta" binding:"required" example:"-20"`
	Reason string `json:"reason" binding:"required" example:"round buy-in"`
}

// AdjustCoinsResponse represents the result of a coin adjustment
type AdjustCoinsResponse struct {
	EntryID    int64 `json:"entry_id" example:"456"`
	UserID     int64 `json:"user_id" example:"123"`
	Delta      int64 `json:"delta" example:"-20"`
	NewBalance int64 `json:"new_balance" example:"30"`
}

// BalanceResponse represents a user's current coin balance
type BalanceResponse struct {
	UserID int64 `json:"user_id" example:"123"`
	Coins  int64 `json:"coins" example:"30"`
}

// LedgerSumResponse represents the sum of a user's ledger entries
type LedgerSumResponse struct {
	UserID int64 `json:"user_id" example:"123"`
	Sum    int64 `json:"sum" example:"30"`
}

// AdjustCoins applies a signed coin delta to a user's balance
// @Summary Adjust a user's coin balance
// @Description Atomically apply a signed delta to the user's balance and append the matching economy log entry
// @Tags economy
// @Accept json
// @Produce json
// @Param request body AdjustCoinsRequest true "Adjustment details"
// @Success 200 {object} AdjustCoinsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /economy/adjustments [post]
func (h *EconomyHandler) AdjustCoins(c *gin.Context) {
	var req AdjustCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	delta := *req.Delta

	var entry *domain.EconomyLogEntry
	var newBalance int64
	var err error
	for attempt := 0; attempt < maxAdjustAttempts; attempt++ {
		entry, newBalance, err = h.economyUseCase.ApplyCoinDelta(
			c.Request.Context(), req.UserID, delta, req.Reason)
		if appErr, ok := domain.IsAppError(err); ok && appErr.Code == domain.ErrCodeConcurrentModification {
			// retrying is pointless when the conflict came from the
			// request's own context being cancelled
			if c.Request.Context().Err() != nil {
				break
			}
			continue
		}
		break
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AdjustCoinsResponse{
		EntryID:    entry.ID,
		UserID:     req.UserID,
		Delta:      delta,
		NewBalance: newBalance,
	})
}

// GetBalance returns the authenticated user's coin balance
// @Summary Current coin balance
// @Tags economy
// @Produce json
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/balance [get]
func (h *EconomyHandler) GetBalance(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	coins, err := h.economyUseCase.GetBalance(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{UserID: userID, Coins: coins})
}

// ListLedger returns the authenticated user's economy log entries
// @Summary List economy log entries
// @Description Entries are returned in creation order with limit/offset pagination
// @Tags economy
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.EconomyLogEntry
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/ledger [get]
func (h *EconomyHandler) ListLedger(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	entries, err := h.economyUseCase.ListEntries(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetLedgerSum returns the sum of the authenticated user's ledger entries
// @Summary Sum of economy log entries
// @Tags economy
// @Produce json
// @Success 200 {object} LedgerSumResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/ledger/sum [get]
func (h *EconomyHandler) GetLedgerSum(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	sum, err := h.economyUseCase.SumForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LedgerSumResponse{UserID: userID, Sum: sum})
}

// Reconcile checks a user's stored balance against their ledger sum
// @Summary Reconcile a user's balance
// @Description Compare the stored coin balance with the sum of the user's economy log entries
// @Tags economy
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} domain.ReconciliationReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /economy/reconcile/{user_id} [get]
func (h *EconomyHandler) Reconcile(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	report, err := h.economyUseCase.Reconcile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
