// Package http contains the inbound HTTP delivery layer of the relay
package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers relay HTTP routes
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates a new relay router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers relay routes on the router.
// Every unmatched method or path gets the liveness text.
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.RedirectTrailingSlash = false
	rt.RedirectFixedPath = false
	rt.HandleOPTIONS = false

	rt.POST("/webhook/{token}", r.handlers.HandleWebhook)
	rt.GET("/", r.handlers.HandleDirect)

	rt.NotFound = r.handlers.HandleLiveness
	rt.MethodNotAllowed = r.handlers.HandleLiveness
	rt.PanicHandler = r.handlers.HandlePanic

	r.logger.Info().Msg("Relay routes registered")
}
