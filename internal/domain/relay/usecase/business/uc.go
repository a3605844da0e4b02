// Package business contains business logic for the relay domain
package business

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/consts"
	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	"github.com/Conte777/mediarelay/internal/domain/relay/dto"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
	relayerrors "github.com/Conte777/mediarelay/internal/domain/relay/errors"
	"github.com/Conte777/mediarelay/internal/infrastructure/metrics"
)

// fallbackTimeout bounds the text reply sent after the pipeline itself failed
const fallbackTimeout = 30 * time.Second

// UseCase runs the resolve, derive, fetch and deliver pipeline
type UseCase struct {
	resolver        deps.LinkResolver
	deriver         deps.URLDeriver
	fetcher         deps.MediaFetcher
	sender          deps.TelegramSender
	shortLinkPrefix string
	pipelineTimeout time.Duration
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	resolver deps.LinkResolver,
	deriver deps.URLDeriver,
	fetcher deps.MediaFetcher,
	sender deps.TelegramSender,
	mediaCfg *config.MediaConfig,
	relayCfg *config.RelayConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		deriver:         deriver,
		fetcher:         fetcher,
		sender:          sender,
		shortLinkPrefix: mediaCfg.ShortLinkPrefix,
		pipelineTimeout: relayCfg.PipelineTimeout,
		metrics:         m,
		logger:          logger.With().Str("component", "relay_usecase").Logger(),
	}
}

// NewMediaRequest builds a request and validates it. The link itself is
// checked later by the pipeline so a malformed one still gets a reply.
func (uc *UseCase) NewMediaRequest(trigger string, userID int64, link string) (*dto.MediaRequest, error) {
	req := dto.NewMediaRequest(trigger, userID, strings.TrimSpace(link))
	if err := req.Validate(); err != nil {
		uc.metrics.RecordRequest(trigger, "invalid")
		return nil, err
	}

	uc.metrics.RecordRequest(trigger, "accepted")
	return req, nil
}

// HandleStart sends the welcome message
func (uc *UseCase) HandleStart(ctx context.Context, userID int64) error {
	uc.logger.Info().Int64("user_id", userID).Msg("User started bot")
	return uc.sender.SendMessage(ctx, userID, consts.WelcomeMessage)
}

// HandleInvalidInput replies to text that is neither a command nor a link
func (uc *UseCase) HandleInvalidInput(ctx context.Context, userID int64) error {
	uc.logger.Debug().Int64("user_id", userID).Msg("Rejected non-link input")
	return uc.sender.SendMessage(ctx, userID, consts.InvalidInputMessage)
}

// ProcessMediaRequest relays the media behind req.SourceURL to req.UserID.
// The user always receives either the media or a text reply; the returned
// outcome says which.
func (uc *UseCase) ProcessMediaRequest(ctx context.Context, req *dto.MediaRequest) entities.DeliveryOutcome {
	start := time.Now()
	log := uc.logger.With().
		Str("request_id", req.RequestID).
		Int64("user_id", req.UserID).
		Str("trigger", req.Trigger).
		Logger()

	if uc.pipelineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.pipelineTimeout)
		defer cancel()
	}

	outcome := uc.process(ctx, req, log)
	uc.metrics.RecordOutcome(string(outcome.Status), time.Since(start).Seconds())

	event := log.Info()
	if outcome.Err != nil {
		event = log.Warn().Err(outcome.Err)
	}
	event.
		Str("status", string(outcome.Status)).
		Str("mode", string(outcome.Mode)).
		Dur("duration", time.Since(start)).
		Msg("Media request finished")

	return outcome
}

func (uc *UseCase) process(ctx context.Context, req *dto.MediaRequest, log zerolog.Logger) entities.DeliveryOutcome {
	if err := req.Validate(); err != nil {
		if sendErr := uc.sender.SendMessage(ctx, req.UserID, consts.InvalidInputMessage); sendErr != nil {
			return entities.DeliveryOutcome{Status: entities.OutcomeFailed, Mode: entities.DeliveryModeMessage, Err: errors.Join(err, sendErr)}
		}
		return entities.DeliveryOutcome{Status: entities.OutcomeRejected, Mode: entities.DeliveryModeMessage, FallbackText: consts.InvalidInputMessage, Err: err}
	}

	if err := req.ValidateLink(); err != nil {
		log.Debug().Str("link", req.SourceURL).Msg("Malformed source link")
		return uc.fallback(ctx, req.UserID, consts.ProcessingFailedMessage(req.SourceURL), errors.Join(relayerrors.ErrInvalidLink, err))
	}

	link := req.SourceURL
	if uc.shortLinkPrefix != "" && strings.HasPrefix(link, uc.shortLinkPrefix) {
		resolved, err := uc.resolver.Resolve(ctx, link)
		uc.metrics.RecordResolution(err == nil)
		if err != nil {
			return uc.fallback(ctx, req.UserID, consts.ProcessingFailedMessage(req.SourceURL), err)
		}
		log.Debug().Str("resolved", resolved).Msg("Short link resolved")
		link = resolved
	}

	ref, err := entities.ParseMediaRef(link)
	if err != nil {
		return uc.fallback(ctx, req.UserID, consts.ProcessingFailedMessage(req.SourceURL), errors.Join(relayerrors.ErrInvalidLink, err))
	}

	candidates := uc.deriver.Derive(ref.Kind, ref.ID)
	if len(candidates) == 0 {
		log.Info().Str("kind", string(ref.Kind)).Msg("Unsupported media kind")
		if sendErr := uc.sender.SendMessage(ctx, req.UserID, consts.UnsupportedMessage); sendErr != nil {
			return entities.DeliveryOutcome{Status: entities.OutcomeFailed, Mode: entities.DeliveryModeMessage, Err: errors.Join(relayerrors.ErrUnsupportedMediaKind, sendErr)}
		}
		return entities.DeliveryOutcome{Status: entities.OutcomeUnsupported, Mode: entities.DeliveryModeMessage, FallbackText: consts.UnsupportedMessage}
	}

	log.Debug().
		Str("kind", string(ref.Kind)).
		Str("media_id", ref.ID).
		Strs("candidates", candidates).
		Msg("Derived mirror candidates")

	fallbackText := consts.UploadFailedMessage(candidates.First())

	switch mode := ref.Kind.DeliveryMode(); mode {
	case entities.DeliveryModeAudio:
		payload, err := uc.fetcher.Fetch(ctx, candidates)
		if err != nil {
			return uc.fallback(ctx, req.UserID, fallbackText, err)
		}
		if err := uc.sender.SendAudio(ctx, req.UserID, payload, ref.Kind.Filename(ref.ID)); err != nil {
			return uc.fallback(ctx, req.UserID, fallbackText, err)
		}
		return entities.DeliveryOutcome{Status: entities.OutcomeDelivered, Mode: mode}

	default:
		if !uc.sender.SendDocument(ctx, req.UserID, candidates.First()) {
			return uc.fallback(ctx, req.UserID, fallbackText, &relayerrors.DeliverySendError{Method: "sendDocument", Err: errors.New("rejected by Telegram")})
		}
		return entities.DeliveryOutcome{Status: entities.OutcomeDelivered, Mode: entities.DeliveryModeDocument}
	}
}

// fallback sends text with a raw link, detached from the pipeline deadline
func (uc *UseCase) fallback(ctx context.Context, userID int64, text string, cause error) entities.DeliveryOutcome {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fallbackTimeout)
	defer cancel()

	if err := uc.sender.SendMessage(sendCtx, userID, text); err != nil {
		return entities.DeliveryOutcome{
			Status: entities.OutcomeFailed,
			Mode:   entities.DeliveryModeMessage,
			Err:    errors.Join(cause, err),
		}
	}

	return entities.DeliveryOutcome{
		Status:       entities.OutcomeFallback,
		Mode:         entities.DeliveryModeMessage,
		FallbackText: text,
		Err:          cause,
	}
}
