package shared

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// Wrapper is one unit of cross-cutting behavior (auth, rate limiting, logging)
// composed around a route handler.
type Wrapper func(fiber.Handler) fiber.Handler

// MakeHandler composes handler with wrappers and a single outermost boundary.
// The first-listed wrapper is outermost: it runs first on the way in and last
// on the way out. The boundary establishes the request scope, recovers panics
// and converts every error into the uniform envelope, so wrappers and
// handlers never need their own try/catch for standard failures.
//
// Route modules only ever export handlers built through MakeHandler; raw
// nesting of wrappers is not part of the public surface.
func MakeHandler(handler fiber.Handler, wrappers ...Wrapper) fiber.Handler {
	composed := handler
	for i := len(wrappers) - 1; i >= 0; i-- {
		composed = wrappers[i](composed)
	}

	return func(c *fiber.Ctx) error {
		scope := establishScope(c)

		err := call(composed, c)
		if err == nil {
			return nil
		}

		return writeError(c, scope, err)
	}
}

func call(h fiber.Handler, c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AppError{Kind: KindUnknown, Err: errors.New("panic in handler chain")}
			log.WithFields(log.Fields{
				"request_id": Scope(c).RequestID,
				"panic":      r,
				"stack":      string(debug.Stack()),
			}).Error("Recovered from handler panic")
		}
	}()

	return h(c)
}

func writeError(c *fiber.Ctx, scope *RequestScope, err error) error {
	fields := log.Fields{
		"request_id": scope.RequestID,
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         scope.IP,
	}

	// A dropped connection is an expected termination, not a server fault.
	if isClientAbort(err) {
		log.WithFields(fields).Debug("Client aborted request")
		return ResponseError(c, &AppError{Kind: KindClientAborted})
	}

	appErr, ok := GetAppError(err)
	if !ok {
		// Anything untyped is an Unknown failure: full detail to the log,
		// generic 500 to the client.
		log.WithFields(fields).WithError(err).
			WithField("stack", string(debug.Stack())).
			Error("Unhandled error in request")
		return ResponseError(c, &AppError{Kind: KindUnknown, Err: err})
	}

	switch appErr.Kind {
	case KindInfrastructureFailure, KindUnknown:
		log.WithFields(fields).WithError(appErr.Err).Error("Request failed")
	default:
		log.WithFields(fields).WithField("code", string(appErr.Kind)).
			WithError(appErr.Err).Warn("Request rejected")
	}

	return ResponseError(c, appErr)
}

func isClientAbort(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, fasthttp.ErrConnectionClosed)
}
