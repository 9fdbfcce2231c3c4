package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatusCodes(t *testing.T) {
	cases := []struct {
		kind   ErrorKind
		status int
	}{
		{KindValidationFailed, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{KindUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{KindTooManyRequests, http.StatusTooManyRequests},
		{KindInfrastructureFailure, http.StatusInternalServerError},
		{KindClientAborted, StatusClientClosedRequest},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr := &AppError{Kind: tc.kind}
		if got := appErr.StatusCode(); got != tc.status {
			t.Errorf("kind %s: status = %d, want %d", tc.kind, got, tc.status)
		}
		if appErr.Title() == "" {
			t.Errorf("kind %s: empty title", tc.kind)
		}
		if appErr.Message() == "" {
			t.Errorf("kind %s: empty message key", tc.kind)
		}
	}
}

func TestGetAppErrorUnwrapsChains(t *testing.T) {
	cause := errors.New("row not found")
	appErr := ErrNotFound(cause)
	wrapped := fmt.Errorf("loading recipe: %w", appErr)

	got, ok := GetAppError(wrapped)
	if !ok {
		t.Fatal("GetAppError did not find AppError in chain")
	}
	if got.Kind != KindNotFound {
		t.Errorf("kind = %s, want %s", got.Kind, KindNotFound)
	}
	if !errors.Is(wrapped, appErr) {
		t.Error("errors.Is lost the original AppError")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is lost the root cause")
	}
}

func TestGetAppErrorRejectsPlainErrors(t *testing.T) {
	if _, ok := GetAppError(errors.New("plain")); ok {
		t.Error("plain error classified as AppError")
	}
	if _, ok := GetAppError(nil); ok {
		t.Error("nil classified as AppError")
	}
}

func TestErrTooManyRequestsCarriesRetryAfter(t *testing.T) {
	appErr := ErrTooManyRequests(42)
	if appErr.Kind != KindTooManyRequests {
		t.Errorf("kind = %s, want %s", appErr.Kind, KindTooManyRequests)
	}
	if appErr.RetryAfterSeconds != 42 {
		t.Errorf("retry after = %d, want 42", appErr.RetryAfterSeconds)
	}
}

func TestMessageIsTranslationKeyNotCause(t *testing.T) {
	appErr := ErrInfrastructure(errors.New("pq: connection refused on 10.0.0.5"))
	if msg := appErr.Message(); msg == "" || msg == appErr.Err.Error() {
		t.Errorf("message %q leaks the cause", msg)
	}
}
