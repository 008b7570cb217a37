package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	batchSize  = 100
	maxRetries = 5
)

// Processor drains pending outbox events and delivers them to the platform
// webhook. Events are enqueued in the same database transaction as the state
// change they describe, so delivery is at-least-once without ever touching
// the money invariant.
type Processor struct {
	outboxRepo domain.OutboxRepository
	notifier   domain.EventNotifier
	logger     *logger.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
}

// NewProcessor creates a new outbox processor
func NewProcessor(
	outboxRepo domain.OutboxRepository,
	notifier domain.EventNotifier,
	logger *logger.Logger,
) domain.OutboxProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		outboxRepo: outboxRepo,
		notifier:   notifier,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins polling for pending events at the given interval
func (p *Processor) Start(interval time.Duration) {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = true
	p.mu.Unlock()

	p.logger.Info("Starting outbox processor", zap.Duration("interval", interval))

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				if err := p.ProcessEvents(); err != nil {
					p.logger.Error("Outbox processing pass failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop cancels the polling loop and waits for the in-flight pass to finish
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.logger.Info("Outbox processor stopped")
}

// ProcessEvents processes one batch of pending events
func (p *Processor) ProcessEvents() error {
	events, err := p.outboxRepo.GetPendingEvents(batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending events: %w", err)
	}

	for _, event := range events {
		select {
		case <-p.ctx.Done():
			return fmt.Errorf("processor cancelled")
		default:
		}

		if err := p.processEvent(event); err != nil {
			p.logger.Error("Failed to process event",
				zap.Int64("event_id", event.ID),
				zap.String("event_type", event.Type),
				zap.Error(err))

			if event.RetryCount < maxRetries {
				if retryErr := p.outboxRepo.IncrementRetryCount(event.ID); retryErr != nil {
					p.logger.Error("Failed to increment retry count", zap.Error(retryErr))
				}
			} else {
				if failErr := p.outboxRepo.MarkAsFailed(event.ID, err.Error()); failErr != nil {
					p.logger.Error("Failed to mark event as failed", zap.Error(failErr))
				}
			}
			continue
		}

		if err := p.outboxRepo.MarkAsProcessed(event.ID); err != nil {
			p.logger.Error("Failed to mark event as processed",
				zap.Int64("event_id", event.ID),
				zap.Error(err))
		}
	}

	return nil
}

// processEvent delivers a single outbox event
func (p *Processor) processEvent(event *domain.OutboxEvent) error {
	switch event.Type {
	case domain.EventTypeCoinsChanged, domain.EventTypeRoundRecorded:
		return p.notifier.Notify(event.Type, event.Data)
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}
