package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playrummy/ledger/internal/domain"
)

// ErrorResponse mirrors domain.ErrorResponse for swagger documentation
type ErrorResponse struct {
	Error   *domain.AppError `json:"error"`
	Success bool             `json:"success" example:"false"`
}

// respondError maps an error to an HTTP response using its AppError status
// when available.
func respondError(c *gin.Context, err error) {
	if appErr, ok := domain.IsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, domain.NewErrorResponse(appErr))
		return
	}
	c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(
		domain.NewInternalError("", err)))
}

// getAuthenticatedUserID extracts the authenticated user ID set by the JWT
// middleware.
func getAuthenticatedUserID(c *gin.Context) (int64, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, domain.NewUnauthorizedError("User not authenticated"))
		return 0, false
	}

	userID, err := strconv.ParseInt(userIDStr.(string), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID format", 400, err))
		return 0, false
	}

	return userID, true
}

// pathID parses an int64 path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid "+name+" format", 400, err))
		return 0, false
	}
	return id, true
}

// pagination reads limit/offset query parameters with defaults
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
