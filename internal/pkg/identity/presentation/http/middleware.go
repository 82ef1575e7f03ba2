package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
)

const userIDKey = "auth.userID"

// RequireSession resolves the Authorization bearer token to a user id and
// stores it on the gin context. Requests without a valid session get 401.
func RequireSession(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := auth.Resolve(c.Request.Context(), token)
		if errors.Is(err, identity.ErrNoSession) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or unknown"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// WithUser stores userID as the session user directly, bypassing token
// resolution. For handler tests that need an authenticated viewer.
func WithUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by RequireSession.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
