package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
)

// ErrorHandler translates errors attached with c.Error into JSON responses.
//
// Behavior:
//   - Runs after the handler chain; does nothing when no error was attached
//     or a response was already written.
//   - Uses the last attached error to pick the status code and message:
//     not found -> 404, invalid timeframe -> 400, invalid sort/pagination or
//     missing data -> 400, anything else -> 500.
//   - Client errors are logged at warn level, server errors at error level.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.ErrorHandler)
//	...
//	_ = c.Error(err) // inside a handler
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, message := statusFor(err)

	rid, _ := c.Get(RequestIDKey)
	ev := logger.L().Error()
	if status < http.StatusInternalServerError {
		ev = logger.L().Warn()
	}
	ev.Err(err).
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("request failed")

	AbortWithError(c, status, message, err)
}

// AbortWithError stops the chain and writes a standardized error body.
//
// Parameters:
//   - c: the gin context.
//   - status: HTTP status code to send.
//   - message: short, user-facing message.
//   - err: underlying cause, exposed as error_details (may be nil).
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	resp.Code = status
	c.AbortWithStatusJSON(status, resp)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Cryptocurrency not found"
	case errors.Is(err, models.ErrInvalidTimeframe):
		return http.StatusBadRequest, "Invalid timeframe parameters"
	case errors.Is(err, models.ErrInvalidSort),
		errors.Is(err, models.ErrInvalidPagination),
		errors.Is(err, models.ErrNoData):
		return http.StatusBadRequest, "Validation failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
