package outbox

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/domain/mocks"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestProcessor(ctrl *gomock.Controller) (*Processor, *mocks.MockOutboxRepository, *mocks.MockEventNotifier) {
	mockOutboxRepo := mocks.NewMockOutboxRepository(ctrl)
	mockNotifier := mocks.NewMockEventNotifier(ctrl)

	p := NewProcessor(mockOutboxRepo, mockNotifier, logger.NewLogger("test", "error")).(*Processor)
	return p, mockOutboxRepo, mockNotifier
}

func TestProcessEventsDeliversPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockOutboxRepo, mockNotifier := newTestProcessor(ctrl)

	events := []*domain.OutboxEvent{
		{ID: 1, Type: domain.EventTypeCoinsChanged, Data: domain.JSONB{"user_id": int64(123)}, Status: domain.EventStatusPending},
		{ID: 2, Type: domain.EventTypeRoundRecorded, Data: domain.JSONB{"round_id": int64(55)}, Status: domain.EventStatusPending},
	}

	mockOutboxRepo.EXPECT().GetPendingEvents(batchSize).Return(events, nil)
	mockNotifier.EXPECT().Notify(domain.EventTypeCoinsChanged, events[0].Data).Return(nil)
	mockNotifier.EXPECT().Notify(domain.EventTypeRoundRecorded, events[1].Data).Return(nil)
	mockOutboxRepo.EXPECT().MarkAsProcessed(int64(1)).Return(nil)
	mockOutboxRepo.EXPECT().MarkAsProcessed(int64(2)).Return(nil)

	assert.NoError(t, p.ProcessEvents())
}

func TestProcessEventsRetriesOnDeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockOutboxRepo, mockNotifier := newTestProcessor(ctrl)

	events := []*domain.OutboxEvent{
		{ID: 1, Type: domain.EventTypeCoinsChanged, Status: domain.EventStatusPending, RetryCount: 0},
	}

	mockOutboxRepo.EXPECT().GetPendingEvents(batchSize).Return(events, nil)
	mockNotifier.EXPECT().Notify(domain.EventTypeCoinsChanged, gomock.Any()).Return(errors.New("webhook unreachable"))
	mockOutboxRepo.EXPECT().IncrementRetryCount(int64(1)).Return(nil)

	assert.NoError(t, p.ProcessEvents())
}

func TestProcessEventsMarksFailedAfterMaxRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockOutboxRepo, mockNotifier := newTestProcessor(ctrl)

	events := []*domain.OutboxEvent{
		{ID: 1, Type: domain.EventTypeCoinsChanged, Status: domain.EventStatusPending, RetryCount: maxRetries},
	}

	mockOutboxRepo.EXPECT().GetPendingEvents(batchSize).Return(events, nil)
	mockNotifier.EXPECT().Notify(domain.EventTypeCoinsChanged, gomock.Any()).Return(errors.New("webhook unreachable"))
	mockOutboxRepo.EXPECT().MarkAsFailed(int64(1), gomock.Any()).Return(nil)

	assert.NoError(t, p.ProcessEvents())
}

func TestProcessEventsUnknownTypeIsNotDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, mockOutboxRepo, _ := newTestProcessor(ctrl)

	events := []*domain.OutboxEvent{
		{ID: 1, Type: "economy.unknown", Status: domain.EventStatusPending, RetryCount: maxRetries},
	}

	mockOutboxRepo.EXPECT().GetPendingEvents(batchSize).Return(events, nil)
	mockOutboxRepo.EXPECT().MarkAsFailed(int64(1), gomock.Any()).Return(nil)

	assert.NoError(t, p.ProcessEvents())
}
