// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/config"
)

// Module provides Telegram bot for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Invoke(registerLifecycle),
)

// provideBot creates Telegram bot from config
func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg, logger.With().Str("component", "telegram").Logger())
}

// registerLifecycle registers the webhook on start when a public URL is configured
func registerLifecycle(lc fx.Lifecycle, bot *Bot, cfg *config.TelegramConfig, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.WebhookBaseURL == "" {
				logger.Info().Msg("TELEGRAM_WEBHOOK_BASE_URL not set, skipping webhook registration")
				return nil
			}
			// A failed registration keeps the service up, the previous webhook may still be valid
			if err := bot.RegisterWebhook(ctx); err != nil {
				logger.Error().Err(err).Msg("Failed to register Telegram webhook")
			}
			return nil
		},
	})
}
