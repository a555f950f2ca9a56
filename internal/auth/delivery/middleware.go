package delivery

import (
	"net/http"
	"strings"

	"cryptnote-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader carries the session token.
	SessionHeader = "auth-token"
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "userID"
)

// SessionMiddleware verifies the session token and stores the caller's id under
// UserIDKey. It does not touch the store.
func SessionMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		userID, err := authUsecase.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(SessionHeader)); token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
