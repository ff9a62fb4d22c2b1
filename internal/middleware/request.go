package middleware

import (
	"time"

	"flashgen/internal/logger"
	"flashgen/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const requestIDLocal = "requestid"

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = fiber.HeaderXRequestID

// RequestIDs assigns every request a ULID (or keeps the caller's
// X-Request-ID) and copies it into the user context as a correlation ID.
// Stored results are keyed by IDs the service mints, never by this one.
func RequestIDs() []fiber.Handler {
	return []fiber.Handler{
		requestid.New(requestid.Config{
			Header:     RequestIDHeader,
			Generator:  util.NewULID,
			ContextKey: requestIDLocal,
		}),
		func(c *fiber.Ctx) error {
			c.SetUserContext(util.WithRequestID(c.UserContext(), RequestID(c)))
			return c.Next()
		},
	}
}

// RequestID returns the ID assigned to the current request, or "".
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}

// RequestLogger logs one line per HTTP request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			// Render through the error handler now so the logged status is final.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Get().Info("HTTP Request",
			zap.String("request_id", RequestID(c)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)
		return nil
	}
}
