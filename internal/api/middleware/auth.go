package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/service"
	"reviewhub/internal/permission"
)

const actorKey = "actor"

// Authenticate verifies the bearer token when one is present. Requests
// without an Authorization header proceed as anonymous: read endpoints
// are public, and the permission table decides the rest downstream. A
// malformed or invalid token is rejected outright.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, &permission.Actor{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// CurrentActor returns the request's actor, or nil for anonymous requests.
func CurrentActor(c *gin.Context) *permission.Actor {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*permission.Actor)
	if !ok {
		return nil
	}
	return actor
}
