// Package relay contains the media relay domain module
package relay

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/config"
	httpDelivery "github.com/Conte777/mediarelay/internal/domain/relay/delivery/http"
	telegramDelivery "github.com/Conte777/mediarelay/internal/domain/relay/delivery/telegram"
	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	"github.com/Conte777/mediarelay/internal/domain/relay/mediaurl"
	"github.com/Conte777/mediarelay/internal/domain/relay/repository/http_clients/mirror"
	"github.com/Conte777/mediarelay/internal/domain/relay/repository/http_clients/shortlink"
	"github.com/Conte777/mediarelay/internal/domain/relay/usecase/business"
	"github.com/Conte777/mediarelay/internal/infrastructure/http/server"
)

// Module provides relay domain components for fx dependency injection
var Module = fx.Module("relay",
	// Repository
	fx.Provide(shortlink.NewClient),
	fx.Provide(mirror.NewClient),
	fx.Provide(provideDeriver),

	// Delivery - Bot API
	fx.Provide(telegramDelivery.NewSender),

	// UseCase
	fx.Provide(business.NewUseCase),
	fx.Provide(provideProcessor),

	// Delivery - HTTP
	fx.Provide(provideHandlers),
	fx.Provide(httpDelivery.NewRouter),

	fx.Invoke(registerRoutes),
)

func provideDeriver(cfg *config.MediaConfig) deps.URLDeriver {
	return mediaurl.NewDeriver(cfg)
}

func provideProcessor(uc *business.UseCase) deps.MediaProcessor {
	return uc
}

func provideHandlers(processor deps.MediaProcessor, cfg *config.TelegramConfig, logger zerolog.Logger) *httpDelivery.Handlers {
	return httpDelivery.NewHandlers(processor, cfg, logger)
}

// registerRoutes mounts relay routes. On stop the server is closed before
// dispatched pipelines are drained; the server's own stop hook then no-ops.
func registerRoutes(lc fx.Lifecycle, router *httpDelivery.Router, handlers *httpDelivery.Handlers, srv *server.Server, logger zerolog.Logger) {
	router.RegisterRoutes(srv.Router)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("Failed to stop accepting relay requests")
			}
			if err := handlers.Drain(ctx); err != nil {
				logger.Warn().Err(err).Msg("Shutting down with media requests in flight")
			}
			return nil
		},
	})
}
