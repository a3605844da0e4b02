package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
)

func TestResolutionError(t *testing.T) {
	cause := pkgerrors.NewUpstreamError("short link returned HTTP 404", nil)
	err := &ResolutionError{Link: "https://rj.app/m/x", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.True(t, pkgerrors.IsUpstreamError(err))
	assert.Contains(t, err.Error(), "https://rj.app/m/x")
}

func TestFetchExhaustedError_ListsEveryCandidate(t *testing.T) {
	err := &FetchExhaustedError{Attempts: []CandidateFailure{
		{URL: "https://host2/a.mp3", Err: errors.New("connection refused")},
		{URL: "https://host1/a.mp3", StatusCode: 404},
		{URL: "https://host3/a.mp3", StatusCode: 200, Size: 3},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "https://host2/a.mp3: connection refused")
	assert.Contains(t, msg, "https://host1/a.mp3: HTTP 404")
	assert.Contains(t, msg, "https://host3/a.mp3: unusually small file (3 bytes)")
}

func TestDeliverySendError_Unwraps(t *testing.T) {
	cause := errors.New("Bad Request: file is too big")
	err := &DeliverySendError{Method: "send audio", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to send audio: Bad Request: file is too big", err.Error())
}
