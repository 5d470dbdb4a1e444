package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docanalytics/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusErrors maps framework-level statuses to their public code and message.
var statusErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
	fiber.StatusUnsupportedMediaType:  {"UNSUPPORTED_MEDIA_TYPE", "unsupported media type"},
	fiber.StatusRequestTimeout:        {"REQUEST_TIMEOUT", "request timeout"},
}

var internalEnvelope = errorEnvelope{"INTERNAL_ERROR", "internal server error"}

func requestIDFromCtx(c *fiber.Ctx) string {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return rid
}

// writeError writes the standard error body. code is a stable machine-readable value
// such as NOT_FOUND; message must not carry internal error details.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

func internalError(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusInternalServerError, internalEnvelope.Code, internalEnvelope.Message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Errors that are not *fiber.Error are logged and answered with INTERNAL_ERROR.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			logger.Error("unhandled error",
				zap.String("request_id", requestIDFromCtx(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		env, ok := statusErrors[status]
		if !ok {
			env = internalEnvelope
		}
		return writeError(c, status, env.Code, env.Message)
	}
}
