package dto

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/shared"
)

// Binding adapters: each takes one raw input source, decodes it into the
// typed DTO and applies its schema. The client always receives the same
// generic ValidationFailed error; field-level diagnostics stay in the server
// log. No side effects beyond that logging.

func ParseBody(c *fiber.Ctx, dst Validator) error {
	if err := c.BodyParser(dst); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return shared.ErrUnsupportedMediaType(err)
		}
		logParseFailure(c, "body", err)
		return shared.ErrValidationFailed(err)
	}
	return applySchema(c, "body", dst)
}

// ParseQuery flattens the query string (repeated keys land in slice fields)
// before applying the schema.
func ParseQuery(c *fiber.Ctx, dst Validator) error {
	if err := c.QueryParser(dst); err != nil {
		logParseFailure(c, "query", err)
		return shared.ErrValidationFailed(err)
	}
	return applySchema(c, "query", dst)
}

// ParseParams applies the schema to path segments already extracted by the
// router; it does no substring parsing of its own.
func ParseParams(c *fiber.Ctx, dst Validator) error {
	if err := c.ParamsParser(dst); err != nil {
		logParseFailure(c, "params", err)
		return shared.ErrValidationFailed(err)
	}
	return applySchema(c, "params", dst)
}

func ParseHeaders(c *fiber.Ctx, dst Validator) error {
	if err := c.ReqHeaderParser(dst); err != nil {
		logParseFailure(c, "headers", err)
		return shared.ErrValidationFailed(err)
	}
	return applySchema(c, "headers", dst)
}

func applySchema(c *fiber.Ctx, source string, dst Validator) error {
	if err := dst.Validate(); err != nil {
		log.WithFields(log.Fields{
			"request_id": shared.Scope(c).RequestID,
			"path":       c.Path(),
			"source":     source,
			"fields":     FormatValidationErrors(err),
		}).Warn("Request validation failed")
		return shared.ErrValidationFailed(err)
	}
	return nil
}

func logParseFailure(c *fiber.Ctx, source string, err error) {
	log.WithFields(log.Fields{
		"request_id": shared.Scope(c).RequestID,
		"path":       c.Path(),
		"source":     source,
	}).WithError(err).Warn("Request decoding failed")
}
