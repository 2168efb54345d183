package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/gaps"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

// RequestError indicates a request the server could not decode.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

func badRequest(message string, cause error) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message, Cause: cause}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr         *RequestError
		inputErr       *pipeline.InputError
		validationErrs validator.ValidationErrors
		roleErr        *gaps.RoleNotFoundError
		maxBytesErr    *http.MaxBytesError
		formatErr      *ingestion.UnsupportedFormatError
		extractErr     *ingestion.ExtractionError
		oracleErr      *embedding.OracleUnavailableError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr):
		return reqErr.Status
	case errors.As(err, &inputErr), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &roleErr):
		return http.StatusNotFound
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &oracleErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing text for err. Server faults are not echoed.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusGatewayTimeout {
		return http.StatusText(status)
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("invalid input %s: failed on %q", fe.Namespace(), fe.Tag())
	}
	return err.Error()
}
