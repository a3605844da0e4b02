package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/consts"
	telegramDelivery "github.com/Conte777/mediarelay/internal/domain/relay/delivery/telegram"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
	"github.com/Conte777/mediarelay/internal/domain/relay/mediaurl"
	"github.com/Conte777/mediarelay/internal/domain/relay/repository/http_clients/mirror"
	"github.com/Conte777/mediarelay/internal/domain/relay/repository/http_clients/shortlink"
	"github.com/Conte777/mediarelay/internal/domain/relay/usecase/business"
	"github.com/Conte777/mediarelay/internal/infrastructure/logger"
	"github.com/Conte777/mediarelay/internal/infrastructure/metrics"
	"github.com/Conte777/mediarelay/internal/infrastructure/telegram"
	"github.com/Conte777/mediarelay/pkg/httputil"
)

const commandTimeout = 30 * time.Second

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

func webhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Point Telegram at TELEGRAM_WEBHOOK_BASE_URL/webhook/<token>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBot(cmd.Context(), func(ctx context.Context, bot *telegram.Bot) error {
				if err := bot.RegisterWebhook(ctx); err != nil {
					return err
				}
				fmt.Println("Webhook registered")
				return nil
			})
		},
	})

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dropPending, _ := cmd.Flags().GetBool("drop-pending")
			return withBot(cmd.Context(), func(ctx context.Context, bot *telegram.Bot) error {
				if err := bot.DeleteWebhook(ctx, dropPending); err != nil {
					return err
				}
				fmt.Println("Webhook deleted")
				return nil
			})
		},
	}
	deleteCmd.Flags().Bool("drop-pending", false, "Drop pending updates")
	cmd.AddCommand(deleteCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the current webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBot(cmd.Context(), func(ctx context.Context, bot *telegram.Bot) error {
				info, err := bot.WebhookInfo(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("URL:             %s\n", redactURL(info.URL))
				fmt.Printf("Pending updates: %d\n", info.PendingUpdateCount)
				if info.LastErrorMessage != "" {
					fmt.Printf("Last error:      %s\n", info.LastErrorMessage)
				}
				return nil
			})
		},
	})

	return cmd
}

func withBot(parent context.Context, fn func(ctx context.Context, bot *telegram.Bot) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := telegram.NewBot(&cfg.Telegram, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(contextOrBackground(parent), commandTimeout)
	defer cancel()
	return fn(ctx, bot)
}

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive <link>",
		Short: "Resolve a link and print its mirror download URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			link := strings.TrimSpace(args[0])
			if strings.HasPrefix(link, cfg.Media.ShortLinkPrefix) {
				ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), cfg.Media.ResolveTimeout)
				defer cancel()

				resolved, err := shortlink.NewClient(&cfg.Media, log).Resolve(ctx, link)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Resolved: %s\n", resolved)
				link = resolved
			}

			return printMirrors(cmd.OutOrStdout(), &cfg.Media, link)
		},
	}
}

func printMirrors(w io.Writer, cfg *config.MediaConfig, link string) error {
	ref, err := entities.ParseMediaRef(link)
	if err != nil {
		return err
	}
	if !mediaurl.Supported(ref.Kind) {
		return fmt.Errorf("%s (kind %q)", consts.UnsupportedMessage, ref.Kind)
	}

	candidates := mediaurl.NewDeriver(cfg).Derive(ref.Kind, ref.ID)
	if len(candidates) == 0 {
		return fmt.Errorf("no mirror hosts configured")
	}

	fmt.Fprintf(w, "Kind:     %s\n", ref.Kind)
	fmt.Fprintf(w, "ID:       %s\n", ref.ID)
	fmt.Fprintf(w, "Filename: %s\n", ref.Kind.Filename(ref.ID))
	for i, c := range candidates {
		fmt.Fprintf(w, "Mirror %d: %s\n", i+1, c)
	}
	return nil
}

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <userid> <link>",
		Short: "Run the relay pipeline once for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", consts.ResponseInvalidUserID, err)
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			bot, err := telegram.NewBot(&cfg.Telegram, log)
			if err != nil {
				return err
			}

			m := metrics.NewMetrics(prometheus.NewRegistry())
			uc := business.NewUseCase(
				shortlink.NewClient(&cfg.Media, log),
				mediaurl.NewDeriver(&cfg.Media),
				mirror.NewClient(&cfg.Media, m, log),
				telegramDelivery.NewSender(bot, m, log),
				&cfg.Media,
				&cfg.Relay,
				m,
				log,
			)

			req, err := uc.NewMediaRequest(consts.TriggerCLI, userID, args[1])
			if err != nil {
				return err
			}

			outcome := uc.ProcessMediaRequest(contextOrBackground(cmd.Context()), req)
			fmt.Printf("Request %s: %s\n", req.RequestID, outcome.Status)
			if outcome.Status == entities.OutcomeFailed {
				return outcome.Err
			}
			return nil
		},
	}
}

// redactURL hides the bot token in a webhook URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	u.Path = httputil.RedactPath(u.Path)
	u.RawPath = u.Path
	return u.String()
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
