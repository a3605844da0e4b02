// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain"
	"github.com/Conte777/mediarelay/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, telegram bot, http server)
		infrastructure.Module,

		// Domain (media relay)
		domain.Module,
	)
}
