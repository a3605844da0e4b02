package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
	relayerrors "github.com/Conte777/mediarelay/internal/domain/relay/errors"
	"github.com/Conte777/mediarelay/internal/infrastructure/metrics"
	"github.com/Conte777/mediarelay/internal/infrastructure/telegram"
)

// Sender delivers relay results through the Bot API
type Sender struct {
	bot     *tgbot.Bot
	redact  func(error) error
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewSender creates a new Bot API sender
func NewSender(bot *telegram.Bot, m *metrics.Metrics, logger zerolog.Logger) deps.TelegramSender {
	return &Sender{
		bot:     bot.Raw(),
		redact:  bot.RedactError,
		metrics: m,
		logger:  logger.With().Str("component", "telegram_sender").Logger(),
	}
}

// SendMessage sends a plain text message, no retry
func (s *Sender) SendMessage(ctx context.Context, userID int64, text string) error {
	if text == "" {
		return relayerrors.ErrEmptyMessage
	}

	_, err := s.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	s.metrics.RecordDelivery(string(entities.DeliveryModeMessage), err == nil)

	if err != nil {
		handledErr := s.handleSendError(userID, err)
		s.logSend("sendMessage", userID, len(text), handledErr)
		return handledErr
	}

	s.logSend("sendMessage", userID, len(text), nil)
	return nil
}

// SendAudio uploads the payload as an audio attachment
func (s *Sender) SendAudio(ctx context.Context, userID int64, payload *entities.FetchedPayload, filename string) error {
	_, err := s.bot.SendAudio(ctx, &tgbot.SendAudioParams{
		ChatID: userID,
		Audio: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(payload.Data),
		},
	})
	s.metrics.RecordDelivery(string(entities.DeliveryModeAudio), err == nil)

	if err != nil {
		sendErr := &relayerrors.DeliverySendError{Method: "sendAudio", Err: s.handleSendError(userID, err)}
		s.logSend("sendAudio", userID, payload.Size(), sendErr)
		return sendErr
	}

	s.logSend("sendAudio", userID, payload.Size(), nil)
	return nil
}

// SendDocument lets Telegram download the document from documentURL
func (s *Sender) SendDocument(ctx context.Context, userID int64, documentURL string) bool {
	_, err := s.bot.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID:   userID,
		Document: &models.InputFileString{Data: documentURL},
	})
	s.metrics.RecordDelivery(string(entities.DeliveryModeDocument), err == nil)

	if err != nil {
		s.logSend("sendDocument", userID, 0, s.handleSendError(userID, err))
		return false
	}

	s.logSend("sendDocument", userID, 0, nil)
	return true
}

// handleSendError classifies Bot API errors. The returned error never
// carries the bot token.
func (s *Sender) handleSendError(userID int64, err error) error {
	var tooMany *tgbot.TooManyRequestsError
	var netErr net.Error
	redacted := s.redact(err)

	switch {
	case errors.Is(err, tgbot.ErrorForbidden):
		s.logger.Warn().Int64("user_id", userID).Msg("User blocked the bot")
		return fmt.Errorf("user blocked the bot: %w", redacted)

	case errors.Is(err, tgbot.ErrorBadRequest) && strings.Contains(err.Error(), "chat not found"):
		s.logger.Warn().Int64("user_id", userID).Msg("Chat not found")
		return fmt.Errorf("chat not found: %w", redacted)

	case errors.As(err, &tooMany):
		s.logger.Warn().Int64("user_id", userID).Int("retry_after", tooMany.RetryAfter).Msg("Rate limit exceeded")
		return fmt.Errorf("rate limit exceeded: %w", redacted)

	case errors.Is(err, tgbot.ErrorUnauthorized):
		s.logger.Error().Msg("Bot API rejected the bot token")
		return fmt.Errorf("unauthorized: %w", redacted)

	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		s.logger.Warn().Int64("user_id", userID).Msg("Network error while calling Bot API")
		return fmt.Errorf("network error: %w", redacted)

	default:
		return fmt.Errorf("bot api request failed: %w", redacted)
	}
}

func (s *Sender) logSend(method string, userID int64, size int, err error) {
	logEvent := s.logger.Info()
	if err != nil {
		logEvent = s.logger.Error().Err(err)
	}

	logEvent.
		Str("method", method).
		Int64("user_id", userID).
		Int("size", size).
		Bool("success", err == nil).
		Msg("Bot API delivery")
}
