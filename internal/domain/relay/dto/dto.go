// Package dto contains data transfer objects for the relay domain
package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// MediaRequest is a normalized request to relay the media behind a link to a user
type MediaRequest struct {
	RequestID string `json:"requestId" validate:"required,uuid"`
	UserID    int64  `json:"userId" validate:"required"`
	SourceURL string `json:"sourceUrl" validate:"required"`
	Trigger   string `json:"trigger" validate:"oneof=webhook direct cli"`
}

// NewMediaRequest creates a MediaRequest with a fresh request ID
func NewMediaRequest(trigger string, userID int64, sourceURL string) *MediaRequest {
	return &MediaRequest{
		RequestID: uuid.NewString(),
		UserID:    userID,
		SourceURL: sourceURL,
		Trigger:   trigger,
	}
}

// Validate checks the request invariants, returning a ValidationError
func (r *MediaRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return pkgerrors.WrapValidationError("invalid media request", err)
	}
	return nil
}

// ValidateLink checks that SourceURL is an absolute http(s) URL.
// A request with a malformed link is still accepted; the pipeline
// answers it with a processing failure message.
func (r *MediaRequest) ValidateLink() error {
	if err := validate.Var(r.SourceURL, "http_url"); err != nil {
		return pkgerrors.WrapValidationError("invalid source url", err)
	}
	return nil
}
