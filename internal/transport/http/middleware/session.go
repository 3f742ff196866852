package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atmosaether/internal/app"
	"atmosaether/internal/transport/http/response"
)

const (
	// SessionCookieName is the cookie the frontend sends with every request.
	SessionCookieName = "session_token"

	ContextUserKey  = "auth_user"
	ContextTokenKey = "auth_token"
)

// unauthenticatedMessage is deliberately identical for every auth failure
// kind; the distinction lives only in server logs.
const unauthenticatedMessage = "Not authenticated"

// AuthSession resolves the session token (cookie preferred, bearer header
// fallback) to a user and aborts with 401 otherwise.
func AuthSession(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, unauthenticatedMessage)
			c.Abort()
			return
		}

		user, err := authService.ResolveToken(token)
		if err != nil {
			log.Printf("session resolve failed: %v", err)
			response.Error(c, http.StatusUnauthorized, unauthenticatedMessage)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(authHeader, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	}
	return ""
}
