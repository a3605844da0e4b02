package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediarelay/config"
	"github.com/Conte777/mediarelay/internal/domain/relay/deps"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
	relayerrors "github.com/Conte777/mediarelay/internal/domain/relay/errors"
	"github.com/Conte777/mediarelay/internal/infrastructure/metrics"
)

const bodyExcerptLimit = 256

var errPayloadTooLarge = errors.New("payload exceeds upload limit")

// Attempt results reported to metrics
const (
	resultSuccess   = "success"
	resultTransport = "transport_error"
	resultStatus    = "bad_status"
	resultTooSmall  = "too_small"
	resultTooLarge  = "too_large"
)

type Client struct {
	userAgent  string
	minBytes   int
	maxBytes   int64
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

func NewClient(cfg *config.MediaConfig, m *metrics.Metrics, logger zerolog.Logger) deps.MediaFetcher {
	client := &Client{
		userAgent: cfg.UserAgent,
		minBytes:  cfg.MinPayloadBytes,
		maxBytes:  cfg.MaxPayloadBytes,
		httpClient: &http.Client{
			Timeout: cfg.DownloadTimeout,
		},
		metrics: m,
		logger:  logger.With().Str("component", "mirror_fetcher").Logger(),
	}

	logger.Info().
		Strs("hosts", cfg.MirrorHosts).
		Int64("max_bytes", cfg.MaxPayloadBytes).
		Msg("Mirror fetcher initialized")

	return client
}

// Fetch tries candidates in order and returns the first acceptable payload.
// Candidates are never fetched in parallel.
func (c *Client) Fetch(ctx context.Context, candidates entities.CandidateURLSet) (*entities.FetchedPayload, error) {
	if len(candidates) == 0 {
		return nil, relayerrors.ErrNoCandidates
	}

	attempts := make([]relayerrors.CandidateFailure, 0, len(candidates))
	for _, url := range candidates {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, relayerrors.CandidateFailure{URL: url, Err: err})
			break
		}

		start := time.Now()
		payload, failure := c.fetchOne(ctx, url)
		if failure == nil {
			c.metrics.RecordFetchAttempt(resultSuccess, time.Since(start).Seconds())
			c.metrics.RecordPayload(payload.Size())

			c.logger.Debug().
				Str("url", url).
				Int("size", payload.Size()).
				Str("content_type", payload.ContentType).
				Msg("Fetched media payload")
			return payload, nil
		}

		c.metrics.RecordFetchAttempt(failureResult(failure), time.Since(start).Seconds())
		c.logFailure(failure)
		attempts = append(attempts, failure.CandidateFailure)
	}

	return nil, &relayerrors.FetchExhaustedError{Attempts: attempts}
}

type attemptFailure struct {
	relayerrors.CandidateFailure
	excerpt string
}

func (c *Client) fetchOne(ctx context.Context, url string) (*entities.FetchedPayload, *attemptFailure) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &attemptFailure{CandidateFailure: relayerrors.CandidateFailure{URL: url, Err: err}}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", url)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &attemptFailure{CandidateFailure: relayerrors.CandidateFailure{URL: url, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, bodyExcerptLimit))
		return nil, &attemptFailure{
			CandidateFailure: relayerrors.CandidateFailure{URL: url, StatusCode: resp.StatusCode},
			excerpt:          strings.TrimSpace(string(excerpt)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &attemptFailure{CandidateFailure: relayerrors.CandidateFailure{
			URL: url, StatusCode: resp.StatusCode, Size: len(data), Err: fmt.Errorf("read body: %w", err),
		}}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, &attemptFailure{CandidateFailure: relayerrors.CandidateFailure{
			URL: url, StatusCode: resp.StatusCode, Size: len(data), Err: errPayloadTooLarge,
		}}
	}
	if len(data) <= c.minBytes {
		return nil, &attemptFailure{CandidateFailure: relayerrors.CandidateFailure{
			URL: url, StatusCode: resp.StatusCode, Size: len(data),
		}}
	}

	return &entities.FetchedPayload{
		Data:        data,
		SourceURL:   url,
		ContentType: mimetype.Detect(data).String(),
	}, nil
}

func (c *Client) logFailure(f *attemptFailure) {
	event := c.logger.Warn().
		Str("url", f.URL).
		Int("status_code", f.StatusCode).
		Int("size", f.Size)
	if f.Err != nil {
		event = event.Err(f.Err)
	}
	if f.excerpt != "" {
		event = event.Str("body", f.excerpt)
	}
	event.Msg("Mirror candidate rejected")
}

func failureResult(f *attemptFailure) string {
	switch {
	case errors.Is(f.Err, errPayloadTooLarge):
		return resultTooLarge
	case f.Err != nil:
		return resultTransport
	case f.StatusCode < 200 || f.StatusCode > 299:
		return resultStatus
	default:
		return resultTooSmall
	}
}
