package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/consts"
	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	"github.com/Conte777/mediarelay/internal/domain/relay/dto"
	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
	"github.com/Conte777/mediarelay/pkg/httputil"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Handlers serves the webhook and direct-trigger routes
type Handlers struct {
	processor     deps.MediaProcessor
	botToken      []byte
	webhookSecret []byte
	mapper        *pkgerrors.Mapper
	logger        zerolog.Logger

	mu       sync.Mutex
	closing  bool
	inflight sync.WaitGroup
}

// NewHandlers creates relay HTTP handlers
func NewHandlers(processor deps.MediaProcessor, cfg *config.TelegramConfig, logger zerolog.Logger) *Handlers {
	logger = logger.With().Str("handler", "relay").Logger()
	return &Handlers{
		processor:     processor,
		botToken:      []byte(cfg.BotToken),
		webhookSecret: []byte(cfg.WebhookSecret),
		mapper:        pkgerrors.NewMapper(logger),
		logger:        logger,
	}
}

// HandleWebhook handles POST /webhook/{token}
func (h *Handlers) HandleWebhook(ctx *fasthttp.RequestCtx) {
	token, _ := ctx.UserValue("token").(string)
	if subtle.ConstantTimeCompare([]byte(token), h.botToken) != 1 {
		h.logger.Warn().Msg("Webhook called with wrong token")
		h.HandleLiveness(ctx)
		return
	}
	if len(h.webhookSecret) > 0 &&
		subtle.ConstantTimeCompare(ctx.Request.Header.Peek(secretTokenHeader), h.webhookSecret) != 1 {
		h.logger.Warn().Msg("Webhook called without valid secret token")
		h.HandleLiveness(ctx)
		return
	}

	var update models.Update
	if err := json.Unmarshal(ctx.PostBody(), &update); err != nil {
		h.writeError(ctx, pkgerrors.WrapValidationError("Invalid update payload", err))
		return
	}

	message := update.Message
	if message == nil {
		message = update.EditedMessage
	}
	if message == nil || message.From == nil {
		httputil.WriteOK(ctx, consts.ResponseNoMessage)
		return
	}

	h.handleMessage(ctx, message.From.ID, message.Text)
	httputil.WriteOK(ctx, consts.ResponseUpdateHandled)
}

func (h *Handlers) handleMessage(ctx context.Context, userID int64, text string) {
	var err error

	switch {
	case text == consts.CommandStart:
		err = h.processor.HandleStart(ctx, userID)

	case strings.HasPrefix(text, "http://"), strings.HasPrefix(text, "https://"):
		req, reqErr := h.processor.NewMediaRequest(consts.TriggerWebhook, userID, text)
		if reqErr != nil {
			h.logger.Debug().Err(reqErr).Int64("user_id", userID).Msg("Rejected media request")
			err = h.processor.HandleInvalidInput(ctx, userID)
			break
		}
		// Malformed links still run the pipeline, which replies with a processing failure.
		h.processor.ProcessMediaRequest(ctx, req)

	default:
		err = h.processor.HandleInvalidInput(ctx, userID)
	}

	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to reply to update")
	}
}

// HandleDirect handles GET /?link=...&userid=...
func (h *Handlers) HandleDirect(ctx *fasthttp.RequestCtx) {
	link := string(ctx.QueryArgs().Peek("link"))
	userParam := string(ctx.QueryArgs().Peek("userid"))
	if link == "" || userParam == "" {
		h.writeError(ctx, pkgerrors.NewValidationError(consts.ResponseMissingParams))
		return
	}

	userID, err := strconv.ParseInt(userParam, 10, 64)
	if err != nil {
		h.writeError(ctx, pkgerrors.WrapValidationError(consts.ResponseInvalidUserID, err))
		return
	}

	req, err := h.processor.NewMediaRequest(consts.TriggerDirect, userID, link)
	if err != nil {
		h.writeError(ctx, pkgerrors.WrapValidationError(consts.ResponseInvalidUserID, err))
		return
	}

	if err := h.dispatch(req); err != nil {
		h.writeError(ctx, err)
		return
	}
	httputil.WriteOK(ctx, consts.ResponseProcessingStarted)
}

// dispatch runs the pipeline outside the request; the RequestCtx is recycled on return.
// It refuses new work once Drain has started.
func (h *Handlers) dispatch(req *dto.MediaRequest) error {
	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		return pkgerrors.NewUnavailableError(consts.ResponseShuttingDown)
	}
	h.inflight.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error().
					Str("request_id", req.RequestID).
					Str("panic", fmt.Sprint(r)).
					Msg("Media pipeline panicked")
			}
		}()

		h.processor.ProcessMediaRequest(context.Background(), req)
	}()
	return nil
}

// Drain stops accepting dispatches and waits for running pipelines to finish or ctx to end
func (h *Handlers) Drain(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pending media requests not finished: %w", ctx.Err())
	}
}

// HandleLiveness answers any unmatched route
func (h *Handlers) HandleLiveness(ctx *fasthttp.RequestCtx) {
	httputil.WriteOK(ctx, consts.ResponseLiveness)
}

// HandlePanic converts a handler panic into the generic 500 response
func (h *Handlers) HandlePanic(ctx *fasthttp.RequestCtx, v interface{}) {
	h.writeError(ctx, pkgerrors.NewInternalError(fmt.Sprintf("panic: %v", v)))
}

func (h *Handlers) writeError(ctx *fasthttp.RequestCtx, err error) {
	status, msg := h.mapper.MapErrorToHTTP(err)
	httputil.WriteText(ctx, status, msg)
}
