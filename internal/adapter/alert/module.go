package alert

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/rewardhub/rewardhub/internal/config"
)

// Module exposes the alert notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	if p.Config.AlertWebhookURL == "" {
		return NewLogNotifier(p.Logger), nil
	}
	return NewWebhookClient(p.Config.AlertWebhookURL, p.Logger)
}
