// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/internal/infrastructure/http"
	"github.com/Conte777/mediarelay/internal/infrastructure/logger"
	"github.com/Conte777/mediarelay/internal/infrastructure/metrics"
	"github.com/Conte777/mediarelay/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	telegram.Module,
	http.Module,
)
