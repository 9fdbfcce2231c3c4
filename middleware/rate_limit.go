package middleware

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/dto"
	"github.com/jaikeex/cookhound-api/services"
	"github.com/jaikeex/cookhound-api/shared"
)

// RateLimitMiddleware produces fixed-window rate-limit wrappers. Counters
// live in the shared store (Redis in production) so limits hold across
// server instances; the increment is a single atomic operation per request.
type RateLimitMiddleware struct {
	context.DefaultService

	redisSvc *services.RedisService
	store    shared.CounterStore

	mu    sync.RWMutex
	rules map[string]shared.RateLimitRule
}

const RATE_LIMIT_MIDDLEWARE_SVC = "rate_limit"

func (svc RateLimitMiddleware) Id() string {
	return RATE_LIMIT_MIDDLEWARE_SVC
}

func (svc *RateLimitMiddleware) Configure(ctx *context.Context) error {
	svc.redisSvc = ctx.Service(services.REDIS_SVC).(*services.RedisService)
	svc.rules = make(map[string]shared.RateLimitRule)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitMiddleware) Start() error {
	if svc.store == nil {
		svc.store = svc.redisSvc.CounterStore()
	}
	return nil
}

// Limit registers a rule for route and returns the enforcing wrapper.
// Invalid rules and conflicting re-registrations are configuration errors
// and panic at startup; rules never change for the process lifetime.
func (svc *RateLimitMiddleware) Limit(route string, maxRequests int, window time.Duration) shared.Wrapper {
	rule := shared.RateLimitRule{MaxRequests: maxRequests, Window: window}
	if !rule.Valid() {
		panic(fmt.Sprintf("rate limit rule for %q requires positive max requests and window", route))
	}

	svc.mu.Lock()
	if existing, ok := svc.rules[route]; ok && existing != rule {
		svc.mu.Unlock()
		panic(fmt.Sprintf("conflicting rate limit rules registered for %q", route))
	}
	svc.rules[route] = rule
	svc.mu.Unlock()

	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			scope := shared.Scope(c)
			key := counterKey(route, scope.Identity())

			count, ttl, err := svc.store.Incr(c.Context(), key, rule.Window)
			if err != nil {
				// A broken counter store must not take the API down with it.
				log.WithFields(log.Fields{
					"request_id": scope.RequestID,
					"route":      route,
				}).WithError(err).Error("Rate limit store unavailable, failing open")
				return next(c)
			}

			remaining := int64(rule.MaxRequests) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

			if count > int64(rule.MaxRequests) {
				retryAfter := int(math.Ceil(ttl.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				log.WithFields(log.Fields{
					"request_id": scope.RequestID,
					"route":      route,
					"identity":   scope.Identity(),
					"count":      count,
				}).Warn("Rate limit exceeded")
				services.RecordRateLimitRejection(route)
				return shared.ErrTooManyRequests(retryAfter)
			}

			return next(c)
		}
	}
}

// Rules reports the registered rules for the admin surface.
func (svc *RateLimitMiddleware) Rules() []dto.RateLimitRuleInfo {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	rules := make([]dto.RateLimitRuleInfo, 0, len(svc.rules))
	for route, rule := range svc.rules {
		rules = append(rules, dto.RateLimitRuleInfo{
			Route:         route,
			MaxRequests:   rule.MaxRequests,
			WindowSeconds: int(rule.Window.Seconds()),
		})
	}
	return rules
}

// ResetCounter drops the active window for one identity on one route.
func (svc *RateLimitMiddleware) ResetCounter(c *fiber.Ctx, route, identity string) error {
	return svc.store.Reset(c.Context(), counterKey(route, identity))
}

func counterKey(route, identity string) string {
	return "rl:" + route + ":" + identity
}
