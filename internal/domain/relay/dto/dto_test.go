package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
)

func TestNewMediaRequest(t *testing.T) {
	req := NewMediaRequest("webhook", 7, "https://rj.app/m/abc")

	_, err := uuid.Parse(req.RequestID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), req.UserID)
	assert.NoError(t, req.Validate())
}

func TestMediaRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		link    string
		trigger string
	}{
		{"missing user", 0, "https://rj.app/m/abc", "webhook"},
		{"missing link", 7, "", "webhook"},
		{"unknown trigger", 7, "https://rj.app/m/abc", "cron"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMediaRequest(tt.trigger, tt.userID, tt.link).Validate()
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidationError(err))
		})
	}
}

func TestMediaRequest_ValidateLink(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		valid bool
	}{
		{"https", "https://rj.app/m/abc", true},
		{"http", "http://host.example/song/abc", true},
		{"not a url", "http//broken", false},
		{"non http scheme", "ftp://example.com/song/abc", false},
		{"scheme only", "https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewMediaRequest("direct", 7, tt.link)
			require.NoError(t, req.Validate())

			err := req.ValidateLink()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidationError(err))
		})
	}
}
