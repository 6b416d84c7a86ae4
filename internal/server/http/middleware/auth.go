package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub/internal/pkg/identity"
)

const (
	// UserIDContextKey is a gin context key for the authenticated user identifier.
	UserIDContextKey = "userID"
	// UserEmailContextKey carries the authenticated user's email address.
	UserEmailContextKey = "userEmail"
	// UserAdminContextKey marks requests made with administrator tokens.
	UserAdminContextKey = "userAdmin"
)

// TokenVerifier validates bearer tokens issued by the identity provider.
type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

// AuthRequired ensures the caller presents a valid bearer token before
// reaching the handler.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(UserIDContextKey, id.UserID)
		c.Set(UserEmailContextKey, id.Email)
		c.Set(UserAdminContextKey, id.Admin)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
