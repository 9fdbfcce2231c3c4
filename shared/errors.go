package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failure categories the API can report.
// Every error that reaches a client is mapped onto exactly one kind.
type ErrorKind string

const (
	KindValidationFailed      ErrorKind = "VALIDATION_FAILED"
	KindUnauthorized          ErrorKind = "UNAUTHORIZED"
	KindForbidden             ErrorKind = "FORBIDDEN"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindConflict              ErrorKind = "CONFLICT"
	KindPayloadTooLarge       ErrorKind = "PAYLOAD_TOO_LARGE"
	KindUnsupportedMediaType  ErrorKind = "UNSUPPORTED_MEDIA_TYPE"
	KindTooManyRequests       ErrorKind = "TOO_MANY_REQUESTS"
	KindInfrastructureFailure ErrorKind = "INFRASTRUCTURE_FAILURE"
	KindClientAborted         ErrorKind = "CLIENT_ABORTED"
	KindUnknown               ErrorKind = "UNKNOWN"
)

// StatusClientClosedRequest is the non-standard nginx status used when the
// caller dropped the connection before a response could be written.
const StatusClientClosedRequest = 499

type kindInfo struct {
	status     int
	title      string
	messageKey string
}

var kindTable = map[ErrorKind]kindInfo{
	KindValidationFailed:      {http.StatusBadRequest, "Bad Request", "error.validation_failed"},
	KindUnauthorized:          {http.StatusUnauthorized, "Unauthorized", "error.unauthorized"},
	KindForbidden:             {http.StatusForbidden, "Forbidden", "error.forbidden"},
	KindNotFound:              {http.StatusNotFound, "Not Found", "error.not_found"},
	KindConflict:              {http.StatusConflict, "Conflict", "error.conflict"},
	KindPayloadTooLarge:       {http.StatusRequestEntityTooLarge, "Payload Too Large", "error.payload_too_large"},
	KindUnsupportedMediaType:  {http.StatusUnsupportedMediaType, "Unsupported Media Type", "error.unsupported_media_type"},
	KindTooManyRequests:       {http.StatusTooManyRequests, "Too Many Requests", "error.too_many_requests"},
	KindInfrastructureFailure: {http.StatusInternalServerError, "Internal Server Error", "error.infrastructure_failure"},
	KindClientAborted:         {StatusClientClosedRequest, "Client Closed Request", "error.client_aborted"},
	KindUnknown:               {http.StatusInternalServerError, "Internal Server Error", "error.unknown"},
}

// AppError is the typed error the whole pipeline raises and funnels through
// the MakeHandler boundary. The client only ever sees the kind's status, code
// and translation-key message; Err is for server-side logs.
// RetryAfterSeconds is set only for the TooManyRequests kind.
type AppError struct {
	Kind              ErrorKind
	MessageKey        string
	RetryAfterSeconds int
	Err               error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status this kind deterministically maps to.
func (e *AppError) StatusCode() int {
	return kindTable[e.Kind].status
}

func (e *AppError) Title() string {
	return kindTable[e.Kind].title
}

// Message returns the translation key for the failure. Clients localize it;
// they must branch on Code, never on this text.
func (e *AppError) Message() string {
	if e.MessageKey != "" {
		return e.MessageKey
	}
	return kindTable[e.Kind].messageKey
}

func newAppError(kind ErrorKind, cause error) *AppError {
	return &AppError{Kind: kind, Err: cause}
}

func ErrValidationFailed(cause error) *AppError { return newAppError(KindValidationFailed, cause) }
func ErrUnauthorized(cause error) *AppError     { return newAppError(KindUnauthorized, cause) }
func ErrForbidden(cause error) *AppError        { return newAppError(KindForbidden, cause) }
func ErrNotFound(cause error) *AppError         { return newAppError(KindNotFound, cause) }
func ErrConflict(cause error) *AppError         { return newAppError(KindConflict, cause) }
func ErrPayloadTooLarge(cause error) *AppError  { return newAppError(KindPayloadTooLarge, cause) }
func ErrUnsupportedMediaType(cause error) *AppError {
	return newAppError(KindUnsupportedMediaType, cause)
}

// ErrInfrastructure wraps a database/cache/queue/external failure. The cause
// is logged server-side and never exposed.
func ErrInfrastructure(cause error) *AppError {
	return newAppError(KindInfrastructureFailure, cause)
}

// ErrTooManyRequests reports a rate-limit rejection. retryAfterSeconds is the
// remaining window time the limiter surfaces through the Retry-After header.
func ErrTooManyRequests(retryAfterSeconds int) *AppError {
	return &AppError{Kind: KindTooManyRequests, RetryAfterSeconds: retryAfterSeconds}
}

// GetAppError unwraps err down to an *AppError if one is in the chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
