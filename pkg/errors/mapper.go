package errors

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// GenericErrorMessage is the only error body exposed for non-validation failures
const GenericErrorMessage = "Error: Unable to process your request."

// Mapper maps domain errors to HTTP status codes
type Mapper struct {
	logger zerolog.Logger
}

// NewMapper creates a new error mapper
func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// MapErrorToHTTP maps an error to HTTP status code and message
func (m *Mapper) MapErrorToHTTP(err error) (int, string) {
	if err == nil {
		return fasthttp.StatusOK, ""
	}

	switch TypeOf(err) {
	case ErrorTypeValidation:
		var validationErr *ValidationError
		errors.As(err, &validationErr)
		return fasthttp.StatusBadRequest, validationErr.msg

	case ErrorTypeUnavailable:
		var unavailableErr *UnavailableError
		errors.As(err, &unavailableErr)
		return fasthttp.StatusServiceUnavailable, unavailableErr.msg

	case ErrorTypeUpstream:
		m.logger.Error().Err(err).Msg("upstream error")
		return fasthttp.StatusInternalServerError, GenericErrorMessage

	default:
		m.logger.Error().Err(err).Msg("internal server error")
		return fasthttp.StatusInternalServerError, GenericErrorMessage
	}
}
