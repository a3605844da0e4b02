// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediarelay/config"
)

// Bot wraps the Telegram Bot API client for infrastructure layer.
// Updates arrive through the relay webhook route, so the client never polls.
type Bot struct {
	bot    *tgbot.Bot
	cfg    *config.TelegramConfig
	logger zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper
func NewBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	opts := []tgbot.Option{
		tgbot.WithSkipGetMe(),
	}
	if cfg.APIURL != "" {
		opts = append(opts, tgbot.WithServerURL(cfg.APIURL))
	}

	bot, err := tgbot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().Msg("Telegram bot client created successfully")

	return &Bot{
		bot:    bot,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Raw returns the underlying telegram bot
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// RegisterWebhook points Telegram at the relay webhook route
func (b *Bot) RegisterWebhook(ctx context.Context) error {
	webhookURL := b.cfg.WebhookURL()
	if webhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_BASE_URL is not configured")
	}

	ok, err := b.bot.SetWebhook(ctx, &tgbot.SetWebhookParams{
		URL:            webhookURL,
		SecretToken:    b.cfg.WebhookSecret,
		AllowedUpdates: []string{"message", "edited_message"},
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", b.RedactError(err))
	}
	if !ok {
		return fmt.Errorf("failed to set webhook: rejected by Telegram")
	}

	b.logger.Info().Str("base_url", b.cfg.WebhookBaseURL).Msg("Telegram webhook registered")
	return nil
}

// DeleteWebhook removes the webhook registration
func (b *Bot) DeleteWebhook(ctx context.Context, dropPending bool) error {
	ok, err := b.bot.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{DropPendingUpdates: dropPending})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", b.RedactError(err))
	}
	if !ok {
		return fmt.Errorf("failed to delete webhook: rejected by Telegram")
	}

	b.logger.Info().Msg("Telegram webhook deleted")
	return nil
}

// WebhookInfo returns the current webhook registration
func (b *Bot) WebhookInfo(ctx context.Context) (*models.WebhookInfo, error) {
	info, err := b.bot.GetWebhookInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook info: %w", b.RedactError(err))
	}
	return info, nil
}

// RedactError masks the bot token in Bot API errors. Transport failures
// carry the request URL, which embeds the token.
func (b *Bot) RedactError(err error) error {
	return RedactToken(err, b.cfg.BotToken)
}

const redactedToken = "***"

// RedactToken returns err with every occurrence of token masked.
// The result still matches the sentinels of err via errors.Is.
func RedactToken(err error, token string) error {
	if err == nil || token == "" {
		return err
	}

	msg := err.Error()
	if !strings.Contains(msg, token) {
		return err
	}

	return &redactedError{
		msg:   strings.ReplaceAll(msg, token, redactedToken),
		cause: err,
	}
}

// redactedError hides its cause so the token cannot be reached through Unwrap
type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string {
	return e.msg
}

func (e *redactedError) Is(target error) bool {
	return errors.Is(e.cause, target)
}
