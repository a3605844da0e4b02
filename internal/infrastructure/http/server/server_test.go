package server

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/mediarelay/config"
)

func newTestServer(port string) *Server {
	return NewServer(&config.HTTPConfig{
		Port:         port,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}, "media-relay-test", zerolog.Nop())
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := newTestServer("0")
	srv.RegisterMetrics()

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/metrics")
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)

	srv.Handler()(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "go_goroutines")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := newTestServer("0")
	srv.Router.GET("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("ok")
	})

	require.NoError(t, srv.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, srv.Shutdown(ctx), "second shutdown is a no-op")
}
