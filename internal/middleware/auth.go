package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/metrics"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/token"
)

const ContextCaller = "caller"

type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware verifies the bearer token and loads the caller from the
// store. m may be nil.
func AuthMiddleware(tokens TokenVerifier, users UserLoader, m *metrics.Metrics) gin.HandlerFunc {
	reject := func(c *gin.Context, err error) {
		if m != nil {
			m.AuthFailures.WithLabelValues(authFailureReason(err)).Inc()
		}
		c.Abort()
		httperr.Respond(c, err)
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, httperr.ErrAuth("missing_authorization_header", "Not authorized, no token"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			reject(c, httperr.ErrAuth("invalid_authorization_header", "Not authorized, no token"))
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			reject(c, httperr.ErrAuth("invalid_token", "Not authorized, token failed"))
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			reject(c, err)
			return
		}

		caller := identity.FromUser(user)
		c.Set(ContextCaller, caller)
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))

		c.Next()
	}
}

func authFailureReason(err error) string {
	var e *httperr.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal_error"
}

func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	if v, ok := c.Get(ContextCaller); ok {
		if caller, ok := v.(identity.Caller); ok {
			return caller, true
		}
	}
	return identity.FromContext(c.Request.Context())
}
