package app

import (
	"context"
	"fmt"
	"time"

	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/playrummy/ledger/internal/infrastructure/outbox"
	"go.uber.org/fx"
)

const defaultOutboxInterval = 10 * time.Second

func (a *application) InitOutboxProcessor(
	outboxRepo domain.OutboxRepository,
	notifier domain.EventNotifier,
	logger *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(outboxRepo, notifier, logger)
}

// StartOutboxProcessor starts event delivery when a webhook URL is configured
func (a *application) StartOutboxProcessor(lc fx.Lifecycle, processor domain.OutboxProcessor) {
	if a.config.Webhook.URL == "" {
		fmt.Println("[x] Webhook URL not configured, outbox delivery disabled")
		return
	}

	interval := a.config.Webhook.Interval
	if interval <= 0 {
		interval = defaultOutboxInterval
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			processor.Start(interval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			processor.Stop()
			return nil
		},
	})
}
