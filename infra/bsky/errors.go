package bsky

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// APIError is a non-2xx XRPC response.
type APIError struct {
	StatusCode int
	Code       string // XRPC error name, e.g. "AuthenticationRequired"
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return fmt.Sprintf("%s (%d)", e.Code, e.StatusCode)
	default:
		return fmt.Sprintf("API returned %d", e.StatusCode)
	}
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &APIError{
		StatusCode: status,
		Code:       payload.Error,
		Message:    strings.TrimSpace(payload.Message),
	}
}

var validationErrors = []error{
	domain.ErrEmptyPost,
	domain.ErrPostTooLong,
	domain.ErrInvalidURI,
	domain.ErrEmptyQuery,
	domain.ErrInvalidDID,
}

// classify maps an internal error to the envelope's kind and message.
func classify(err error) (domain.Kind, string) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return domain.KindUnauthenticated, domain.ErrUnauthenticated.Error()
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return domain.KindValidation, v.Error()
		}
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return domain.KindRemoteRejected, apiErr.Error()
	}
	return domain.KindTransport, err.Error()
}

// classifyLogin applies the login-specific messages.
func classifyLogin(err error) (domain.Kind, string) {
	if errors.Is(err, domain.ErrEmptyCredentials) {
		return domain.KindValidation, err.Error()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return domain.KindRemoteRejected, "Invalid username or password"
		case http.StatusTooManyRequests:
			return domain.KindRemoteRejected, "Too many attempts, please try again later"
		}
		if apiErr.Message != "" {
			return domain.KindRemoteRejected, apiErr.Message
		}
		return domain.KindRemoteRejected, "Login failed"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return domain.KindTransport, msg
	}
	return domain.KindTransport, "Login failed"
}

// toResult converts an (value, error) pair into the envelope, logging failures.
func toResult[T any](log zerolog.Logger, op string, v T, err error) domain.Result[T] {
	if err == nil {
		return domain.Ok(v)
	}
	kind, msg := classify(err)
	log.Warn().Str("op", op).Str("kind", kind.String()).Err(err).Msg("operation failed")
	return domain.Fail[T](kind, msg)
}
