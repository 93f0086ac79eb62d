package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bitenow/bitenow/internal/config"
)

func newClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	if cfg.PaymentProviderURL == "" {
		logger.Info("payment provider not configured, card checkout disabled")
		return Disabled{}, nil
	}
	return NewHTTPClient(cfg.PaymentProviderURL, cfg.SuccessURL, cfg.CancelURL, logger)
}

// Module wires the payment provider client.
var Module = fx.Module("payment",
	fx.Provide(newClient),
)
