package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medifind/internal/httperr"
)

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "missing_caller", "Not authorized")
			return
		}
		if !caller.HasRole(roles...) {
			httperr.Abort(c, http.StatusForbidden, "forbidden_role",
				"User role "+caller.Role+" is not authorized to access this route")
			return
		}
		c.Next()
	}
}
