// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/internal/domain/relay"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	relay.Module,
)
