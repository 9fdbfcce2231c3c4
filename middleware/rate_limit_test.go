package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/shared"
)

func newTestLimiter() (*RateLimitMiddleware, *shared.MemoryCounterStore) {
	store := shared.NewMemoryCounterStore()
	return &RateLimitMiddleware{
		store: store,
		rules: make(map[string]shared.RateLimitRule),
	}, store
}

func limitedApp(limiter *RateLimitMiddleware, route string, max int, window time.Duration) *fiber.App {
	app := fiber.New()
	app.Get("/", shared.MakeHandler(func(c *fiber.Ctx) error {
		return shared.ResponseOK(c, nil)
	}, limiter.Limit(route, max, window)))
	return app
}

func doGet(t *testing.T, app *fiber.App, ip string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", ip)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestLimitAllowsUpToMaxThenRejects(t *testing.T) {
	limiter, _ := newTestLimiter()
	app := limitedApp(limiter, "login", 3, time.Minute)

	for i := 0; i < 3; i++ {
		resp := doGet(t, app, "198.51.100.7")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	resp := doGet(t, app, "198.51.100.7")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("over-limit status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get(fiber.HeaderRetryAfter) == "" {
		t.Error("429 response carries no Retry-After header")
	}
}

func TestLimitIsolatesIdentities(t *testing.T) {
	limiter, _ := newTestLimiter()
	app := limitedApp(limiter, "login", 1, time.Minute)

	if resp := doGet(t, app, "198.51.100.7"); resp.StatusCode != http.StatusOK {
		t.Fatalf("first identity: status = %d", resp.StatusCode)
	}
	if resp := doGet(t, app, "198.51.100.8"); resp.StatusCode != http.StatusOK {
		t.Fatalf("second identity blocked by first identity's counter: %d", resp.StatusCode)
	}
	if resp := doGet(t, app, "198.51.100.7"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("first identity not limited: %d", resp.StatusCode)
	}
}

func TestLimitWindowResets(t *testing.T) {
	limiter, store := newTestLimiter()
	now := time.Unix(1_700_000_000, 0)
	store.SetClock(func() time.Time { return now })

	app := limitedApp(limiter, "login", 1, time.Minute)

	if resp := doGet(t, app, "198.51.100.7"); resp.StatusCode != http.StatusOK {
		t.Fatal("first request rejected")
	}
	if resp := doGet(t, app, "198.51.100.7"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatal("second request in window not rejected")
	}

	now = now.Add(61 * time.Second)
	if resp := doGet(t, app, "198.51.100.7"); resp.StatusCode != http.StatusOK {
		t.Fatal("request after window expiry rejected")
	}
}

func TestLimitSetsRateLimitHeaders(t *testing.T) {
	limiter, _ := newTestLimiter()
	app := limitedApp(limiter, "login", 5, time.Minute)

	resp := doGet(t, app, "198.51.100.7")
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("X-RateLimit-Remaining = %q, want 4", got)
	}
	if resp.Header.Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset not set")
	}
}

func TestLimitPanicsOnInvalidRule(t *testing.T) {
	limiter, _ := newTestLimiter()

	defer func() {
		if recover() == nil {
			t.Error("invalid rule did not panic")
		}
	}()
	limiter.Limit("bad", 0, time.Minute)
}

func TestLimitPanicsOnConflictingReRegistration(t *testing.T) {
	limiter, _ := newTestLimiter()
	limiter.Limit("login", 10, time.Minute)

	// Same rule again is fine.
	limiter.Limit("login", 10, time.Minute)

	defer func() {
		if recover() == nil {
			t.Error("conflicting rule did not panic")
		}
	}()
	limiter.Limit("login", 5, time.Minute)
}

func TestResetCounterClearsWindow(t *testing.T) {
	limiter, _ := newTestLimiter()
	app := fiber.New()
	app.Get("/limited", shared.MakeHandler(func(c *fiber.Ctx) error {
		return shared.ResponseOK(c, nil)
	}, limiter.Limit("login", 1, time.Minute)))
	app.Delete("/reset", shared.MakeHandler(func(c *fiber.Ctx) error {
		if err := limiter.ResetCounter(c, "login", "198.51.100.7"); err != nil {
			return shared.ErrInfrastructure(err)
		}
		return shared.ResponseNoContent(c)
	}))

	get := func() int {
		req := httptest.NewRequest("GET", "/limited", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.7")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		return resp.StatusCode
	}

	if get() != http.StatusOK {
		t.Fatal("first request rejected")
	}
	if get() != http.StatusTooManyRequests {
		t.Fatal("second request not limited")
	}

	req := httptest.NewRequest("DELETE", "/reset", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("reset request: %v", err)
	}

	if get() != http.StatusOK {
		t.Error("request after reset still limited")
	}
}
