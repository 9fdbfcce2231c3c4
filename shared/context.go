package shared

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	UserID = "user_id"

	scopeKey = "request_scope"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequestScope is the ambient per-request state. MakeHandler establishes it
// before any wrapper runs; identity fields stay empty until the auth wrapper
// resolves them. One scope per in-flight request, never shared.
type RequestScope struct {
	RequestID string
	UserID    string
	UserRole  string
	IP        string
	UserAgent string
}

func establishScope(c *fiber.Ctx) *RequestScope {
	requestID := c.Get(fiber.HeaderXRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	scope := &RequestScope{
		RequestID: requestID,
		IP:        clientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	c.Locals(scopeKey, scope)
	c.Set(fiber.HeaderXRequestID, requestID)
	return scope
}

// Scope returns the request's scope. Calling it outside a MakeHandler chain is
// a programming error and panics rather than handing back empty identity.
func Scope(c *fiber.Ctx) *RequestScope {
	scope, ok := c.Locals(scopeKey).(*RequestScope)
	if !ok || scope == nil {
		panic("shared: request scope accessed outside an active request")
	}
	return scope
}

// Identity returns the rate-limit identity: authenticated user id when
// present, caller IP otherwise.
func (s *RequestScope) Identity() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.IP
}

func clientIP(c *fiber.Ctx) string {
	// Load balancers and Cloudflare put the original caller first.
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}
