package app

import (
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/external/webhook"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
)

func (a *application) InitWebhookNotifier(log *logger.Logger) domain.EventNotifier {
	return webhook.NewNotifier(a.config.Webhook.URL, a.config.Webhook.APIKey, log)
}
