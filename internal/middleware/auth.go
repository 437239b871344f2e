package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/rs/zerolog/log"
)

const callerKey = "caller"

// Authenticate resolves the session cookie (or a bearer token) into a Caller
// and enforces the Permissions table for the matched route.
func Authenticate(auth service.AuthService, cookieName string, rules map[string]Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		rule, listed := rules[c.Request.Method+" "+route]
		if listed && rule.Public {
			c.Next()
			return
		}

		caller, err := auth.Authenticate(c.Request.Context(), tokenFrom(c, cookieName))
		if apperror.Is(err, apperror.KindUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		if err != nil {
			status := apperror.KindOf(err).HTTPStatus()
			log.Error().Err(err).Str("route", c.Request.Method+" "+route).Msg("Session lookup failed")
			c.AbortWithStatusJSON(status, dto.ErrorResponse{Message: "Internal server error"})
			return
		}
		if !listed || !rule.Allows(caller.Role) {
			log.Warn().Uint("userID", caller.ID).Str("role", string(caller.Role)).Str("route", c.Request.Method+" "+route).Msg("Permission denied")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "You do not have permission to perform this action"})
			return
		}
		c.Set(callerKey, *caller)
		c.Next()
	}
}

func tokenFrom(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CallerFrom returns the caller stored by Authenticate.
func CallerFrom(c *gin.Context) (service.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return service.Caller{}, false
	}
	caller, ok := v.(service.Caller)
	return caller, ok
}
