// Package deps contains interface definitions for the relay domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/mediarelay/internal/domain/relay/dto"
	"github.com/Conte777/mediarelay/internal/domain/relay/entities"
)

// LinkResolver follows short-link redirects
type LinkResolver interface {
	// Resolve returns the terminal URL after following all redirects
	Resolve(ctx context.Context, link string) (string, error)
}

// URLDeriver maps a media reference to direct download candidates
type URLDeriver interface {
	// Derive returns candidates ordered by preference, empty for unsupported kinds
	Derive(kind entities.MediaKind, mediaID string) entities.CandidateURLSet
}

// MediaFetcher downloads media from mirror candidates
type MediaFetcher interface {
	// Fetch returns the payload of the first candidate that succeeds
	Fetch(ctx context.Context, candidates entities.CandidateURLSet) (*entities.FetchedPayload, error)
}

// TelegramSender defines interface for delivering results via the Bot API
type TelegramSender interface {
	// SendMessage sends a text message to user
	SendMessage(ctx context.Context, userID int64, text string) error

	// SendAudio uploads payload as a named audio attachment
	SendAudio(ctx context.Context, userID int64, payload *entities.FetchedPayload, filename string) error

	// SendDocument asks Telegram to fetch the document URL itself
	SendDocument(ctx context.Context, userID int64, documentURL string) bool
}

// MediaProcessor is the pipeline entry point used by the delivery layers
type MediaProcessor interface {
	// NewMediaRequest builds and validates a media request
	NewMediaRequest(trigger string, userID int64, link string) (*dto.MediaRequest, error)

	// ProcessMediaRequest runs resolve, derive, fetch and deliver for one request
	ProcessMediaRequest(ctx context.Context, req *dto.MediaRequest) entities.DeliveryOutcome

	// HandleStart sends the welcome message
	HandleStart(ctx context.Context, userID int64) error

	// HandleInvalidInput tells the user the input was not a valid link
	HandleInvalidInput(ctx context.Context, userID int64) error
}
