package relay

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/consts"
	httpDelivery "github.com/Conte777/mediarelay/internal/domain/relay/delivery/http"
	"github.com/Conte777/mediarelay/internal/domain/relay/dto"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
	"github.com/Conte777/mediarelay/internal/infrastructure/http/server"
)

// slowProcessor holds every pipeline run until release is closed
type slowProcessor struct {
	release  chan struct{}
	finished atomic.Int32
}

func (p *slowProcessor) NewMediaRequest(trigger string, userID int64, link string) (*dto.MediaRequest, error) {
	return dto.NewMediaRequest(trigger, userID, link), nil
}

func (p *slowProcessor) ProcessMediaRequest(context.Context, *dto.MediaRequest) entities.DeliveryOutcome {
	<-p.release
	p.finished.Add(1)
	return entities.DeliveryOutcome{Status: entities.OutcomeDelivered}
}

func (p *slowProcessor) HandleStart(context.Context, int64) error { return nil }

func (p *slowProcessor) HandleInvalidInput(context.Context, int64) error { return nil }

func directRequest(srv *server.Server) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/?link=https://rj.app/x&userid=7")

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	srv.Handler()(ctx)
	return ctx
}

func TestRegisterRoutes_StopDrainsPipelines(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	srv := server.NewServer(&config.HTTPConfig{Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		"media-relay-test", zerolog.Nop())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return srv.Start() },
		OnStop:  srv.Shutdown,
	})

	p := &slowProcessor{release: make(chan struct{})}
	handlers := httpDelivery.NewHandlers(p, &config.TelegramConfig{BotToken: "123:test"}, zerolog.Nop())
	registerRoutes(lc, httpDelivery.NewRouter(handlers, zerolog.Nop()), handlers, srv, zerolog.Nop())

	lc.RequireStart()

	ctx := directRequest(srv)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	time.AfterFunc(50*time.Millisecond, func() { close(p.release) })
	lc.RequireStop()

	assert.Equal(t, int32(1), p.finished.Load())

	ctx = directRequest(srv)
	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, consts.ResponseShuttingDown, string(ctx.Response.Body()))
}
