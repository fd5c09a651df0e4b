package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"labtrack-backend/internal/auth"
	"labtrack-backend/internal/policy"
)

const actorKey = "actor"

// Authn validates the Bearer access token and attaches the resulting actor
// to the request context. Requests without a valid token are rejected with
// 401 before any handler runs.
func Authn(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}
		actor, err := tokens.ParseAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Authorize enforces a policy for every request passing through it. It must
// run after Authn.
func Authorize(p policy.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p(Actor(c), c.Request.Method) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated actor for the request, or nil when the
// request was not authenticated.
func Actor(c *gin.Context) *policy.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*policy.Actor)
	return actor
}
