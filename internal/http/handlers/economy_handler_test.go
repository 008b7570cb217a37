package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdjustRequest(t *testing.T, body interface{}) *http.Request {
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/economy/adjustments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func performAdjust(handler *EconomyHandler, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()
	router.POST("/api/v1/economy/adjustments", handler.AdjustCoins)
	router.ServeHTTP(w, req)
	return w
}

func TestAdjustCoinsZeroDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEconomyUseCase := mocks.NewMockEconomyUseCase(ctrl)
	handler := NewEconomyHandler(mockEconomyUseCase)

	// a zero delta is a legal adjustment and still produces an audit entry
	mockEconomyUseCase.EXPECT().
		ApplyCoinDelta(gomock.Any(), int64(123), int64(0), "audit note").
		Return(&domain.EconomyLogEntry{ID: 456, UserID: 123, CoinsChange: 0, Reason: "audit note"}, int64(30), nil)

	req := newAdjustRequest(t, map[string]interface{}{
		"user_id": 123,
		"delta":   0,
		"reason":  "audit note",
	})
	w := performAdjust(handler, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AdjustCoinsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(456), resp.EntryID)
	assert.Equal(t, int64(0), resp.Delta)
	assert.Equal(t, int64(30), resp.NewBalance)
}

func TestAdjustCoinsMissingDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEconomyUseCase := mocks.NewMockEconomyUseCase(ctrl)
	handler := NewEconomyHandler(mockEconomyUseCase)

	req := newAdjustRequest(t, map[string]interface{}{
		"user_id": 123,
		"reason":  "audit note",
	})
	w := performAdjust(handler, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustCoinsRetriesOnConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEconomyUseCase := mocks.NewMockEconomyUseCase(ctrl)
	handler := NewEconomyHandler(mockEconomyUseCase)

	conflict := domain.NewConflictError("Balance is being modified by another operation", nil)
	gomock.InOrder(
		mockEconomyUseCase.EXPECT().
			ApplyCoinDelta(gomock.Any(), int64(123), int64(-20), "round buy-in").
			Return(nil, int64(0), conflict),
		mockEconomyUseCase.EXPECT().
			ApplyCoinDelta(gomock.Any(), int64(123), int64(-20), "round buy-in").
			Return(&domain.EconomyLogEntry{ID: 457, UserID: 123, CoinsChange: -20}, int64(10), nil),
	)

	req := newAdjustRequest(t, map[string]interface{}{
		"user_id": 123,
		"delta":   -20,
		"reason":  "round buy-in",
	})
	w := performAdjust(handler, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdjustCoinsConflictExhaustsAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEconomyUseCase := mocks.NewMockEconomyUseCase(ctrl)
	handler := NewEconomyHandler(mockEconomyUseCase)

	conflict := domain.NewConflictError("Balance is being modified by another operation", nil)
	mockEconomyUseCase.EXPECT().
		ApplyCoinDelta(gomock.Any(), int64(123), int64(-20), "round buy-in").
		Return(nil, int64(0), conflict).
		Times(maxAdjustAttempts)

	req := newAdjustRequest(t, map[string]interface{}{
		"user_id": 123,
		"delta":   -20,
		"reason":  "round buy-in",
	})
	w := performAdjust(handler, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdjustCoinsNoRetryWhenRequestCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEconomyUseCase := mocks.NewMockEconomyUseCase(ctrl)
	handler := NewEconomyHandler(mockEconomyUseCase)

	// a cancelled request context surfaces as a conflict from the lock
	// manager; the handler must not burn retries on it
	conflict := domain.NewConflictError("Balance is being modified by another operation", context.Canceled)
	mockEconomyUseCase.EXPECT().
		ApplyCoinDelta(gomock.Any(), int64(123), int64(-20), "round buy-in").
		Return(nil, int64(0), conflict).
		Times(1)

	req := newAdjustRequest(t, map[string]interface{}{
		"user_id": 123,
		"delta":   -20,
		"reason":  "round buy-in",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req = req.WithContext(ctx)

	w := performAdjust(handler, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
