package shortlink

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	relayerrors "github.com/Conte777/mediarelay/internal/domain/relay/errors"
	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
)

type Client struct {
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg *config.MediaConfig, logger zerolog.Logger) deps.LinkResolver {
	client := &Client{
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.ResolveTimeout,
		},
		logger: logger.With().Str("component", "shortlink_resolver").Logger(),
	}

	logger.Info().
		Str("prefix", cfg.ShortLinkPrefix).
		Dur("timeout", cfg.ResolveTimeout).
		Msg("Short link resolver initialized")

	return client
}

// Resolve follows redirects and returns the final request URL
func (c *Client) Resolve(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", &relayerrors.ResolutionError{Link: link, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("link", link).
			Msg("Failed to follow short link")
		return "", &relayerrors.ResolutionError{
			Link: link,
			Err:  pkgerrors.NewUpstreamError("short link request failed", err),
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Int("status_code", resp.StatusCode).
			Str("link", link).
			Msg("Unexpected status code from short link service")
		return "", &relayerrors.ResolutionError{
			Link: link,
			Err:  pkgerrors.NewUpstreamError(fmt.Sprintf("short link service returned HTTP %d", resp.StatusCode), nil),
		}
	}

	resolved := resp.Request.URL.String()

	c.logger.Debug().
		Str("link", link).
		Str("resolved", resolved).
		Msg("Short link resolved")

	return resolved, nil
}
