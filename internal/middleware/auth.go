package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var errMissingAuthorization = errors.New("authorization header must be 'Bearer <token>' or 'Token <token>'")

// RequireAuthorization rejects requests without a well-formed Authorization header.
//
// Behavior:
//   - Accepts "Bearer <value>" and "Token <value>" (scheme is case-insensitive).
//   - The credential itself is not verified; only its presence and shape are.
//   - Responds 401 with a standardized error body otherwise.
//   - When required is false the middleware is a no-op.
//
// Usage:
//
//	api := router.Group("/crypto/api/v1")
//	api.Use(middleware.RequireAuthorization(cfg.Auth.Required))
func RequireAuthorization(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}
		if !validAuthorization(c.GetHeader("Authorization")) {
			c.Header("WWW-Authenticate", `Bearer realm="cryptopulse"`)
			AbortWithError(c, http.StatusUnauthorized, "Unauthorized", errMissingAuthorization)
			return
		}
		c.Next()
	}
}

func validAuthorization(h string) bool {
	scheme, cred, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || strings.TrimSpace(cred) == "" {
		return false
	}
	return strings.EqualFold(scheme, "Bearer") || strings.EqualFold(scheme, "Token")
}
