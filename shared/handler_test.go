package shared

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/valyala/fasthttp"
)

func performRequest(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) ErrorEnvelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var envelope ErrorEnvelope
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding envelope from %q: %v", body, err)
	}
	return envelope
}

func namedWrapper(name string, order *[]string) Wrapper {
	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			*order = append(*order, name+":in")
			err := next(c)
			*order = append(*order, name+":out")
			return err
		}
	}
}

func TestMakeHandlerWrapperOrdering(t *testing.T) {
	var order []string

	app := fiber.New()
	app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
		order = append(order, "handler")
		return ResponseOK(c, nil)
	}, namedWrapper("a", &order), namedWrapper("b", &order)))

	resp := performRequest(t, app, "GET", "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	want := []string{"a:in", "b:in", "handler", "b:out", "a:out"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMakeHandlerRecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
		panic("nil map write")
	}))

	resp := performRequest(t, app, "GET", "/")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope.Code != string(KindUnknown) {
		t.Errorf("code = %q, want %q", envelope.Code, KindUnknown)
	}
	if envelope.RequestID == "" {
		t.Error("envelope carries no request id")
	}
}

func TestMakeHandlerMapsAppErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   ErrorKind
	}{
		{"not found", ErrNotFound(errors.New("missing")), http.StatusNotFound, KindNotFound},
		{"forbidden", ErrForbidden(errors.New("nope")), http.StatusForbidden, KindForbidden},
		{"conflict", ErrConflict(errors.New("dup")), http.StatusConflict, KindConflict},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
				return tc.err
			}))

			resp := performRequest(t, app, "GET", "/")
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}

			envelope := decodeEnvelope(t, resp)
			if envelope.Code != string(tc.code) {
				t.Errorf("code = %q, want %q", envelope.Code, tc.code)
			}
			if envelope.Status != tc.status {
				t.Errorf("envelope status = %d, want %d", envelope.Status, tc.status)
			}
			if envelope.Timestamp == "" {
				t.Error("envelope carries no timestamp")
			}
		})
	}
}

func TestMakeHandlerEchoesRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
		return ErrNotFound(errors.New("missing"))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-abc-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "req-abc-123" {
		t.Errorf("response header X-Request-ID = %q, want req-abc-123", got)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope.RequestID != "req-abc-123" {
		t.Errorf("envelope request id = %q, want req-abc-123", envelope.RequestID)
	}
}

func TestMakeHandlerRetryAfterHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
		return ErrTooManyRequests(30)
	}))

	resp := performRequest(t, app, "GET", "/")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderRetryAfter); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}
}

func TestScopePanicsOutsideRequest(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	defer func() {
		if recover() == nil {
			t.Error("Scope did not panic outside an active request")
		}
	}()
	Scope(c)
}

func TestScopeIdentityPrefersUserID(t *testing.T) {
	scope := &RequestScope{IP: "203.0.113.9"}
	if got := scope.Identity(); got != "203.0.113.9" {
		t.Errorf("anonymous identity = %q, want IP", got)
	}

	scope.UserID = "user-1"
	if got := scope.Identity(); got != "user-1" {
		t.Errorf("authenticated identity = %q, want user id", got)
	}
}

func TestMakeHandlerClientAbortMapsTo499(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"context canceled", context.Canceled},
		{"wrapped cancellation", fmt.Errorf("streaming response: %w", context.Canceled)},
		{"connection closed", fasthttp.ErrConnectionClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := logtest.NewGlobal()
			defer hook.Reset()

			app := fiber.New()
			app.Get("/", MakeHandler(func(c *fiber.Ctx) error {
				return tt.err
			}))

			resp := performRequest(t, app, "GET", "/")
			if resp.StatusCode != StatusClientClosedRequest {
				t.Fatalf("status = %d, want %d", resp.StatusCode, StatusClientClosedRequest)
			}

			envelope := decodeEnvelope(t, resp)
			if envelope.Code != string(KindClientAborted) {
				t.Errorf("code = %q, want %q", envelope.Code, KindClientAborted)
			}

			// A dropped connection is routine; it must never page anyone.
			for _, entry := range hook.AllEntries() {
				if entry.Level <= log.ErrorLevel {
					t.Errorf("abort logged at %s: %s", entry.Level, entry.Message)
				}
			}
		})
	}
}
