package shared

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the uniform failure shape. Message is a translation key,
// Code is the stable machine-readable string clients branch on.
type ErrorEnvelope struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

// JSONEncoder and JSONDecoder plug the frozen sonic config into fiber.
func JSONEncoder(v interface{}) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

func JSONDecoder(data []byte, v interface{}) error {
	return jsonAPI.Unmarshal(data, v)
}

var (
	successResponse = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse = mustMarshal(Response{Code: 201, Message: "Created"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		switch {
		case httpCode == 200 && message == "Success":
			return sendJSON(c, httpCode, successResponse)
		case httpCode == 201 && message == "Created":
			return sendJSON(c, httpCode, createdResponse)
		}
	}

	body, err := jsonAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return err
	}

	return sendJSON(c, httpCode, body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, http.StatusOK, "Success", data)
}

func ResponseCreated(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, http.StatusCreated, "Created", data)
}

func ResponseNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// ResponseError writes the envelope for an already-classified failure.
// All error paths funnel through here; causes never reach the wire.
func ResponseError(c *fiber.Ctx, appErr *AppError) error {
	scope, _ := c.Locals(scopeKey).(*RequestScope)
	requestID := ""
	if scope != nil {
		requestID = scope.RequestID
	}

	if appErr.Kind == KindTooManyRequests && appErr.RetryAfterSeconds > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(appErr.RetryAfterSeconds))
	}

	body, err := jsonAPI.Marshal(ErrorEnvelope{
		Title:     appErr.Title(),
		Message:   appErr.Message(),
		Status:    appErr.StatusCode(),
		Code:      string(appErr.Kind),
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return sendJSON(c, appErr.StatusCode(), body)
}

func sendJSON(c *fiber.Ctx, httpCode int, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(httpCode).Send(body)
}
