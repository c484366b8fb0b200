// Package middleware holds the gin middleware chain pieces: session
// authentication and per-route rate limiting.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/models/dto"
	"github.com/rjoshi/gradevault/internal/app/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "auth_token"

// ContextUserKey is where SessionRequired stores the authenticated user on
// the gin context.
const ContextUserKey = "currentUser"

// AuthMiddleware guards routes behind a valid session cookie.
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// SessionRequired validates the session cookie and resolves the user.
// Every failure mode (missing cookie, expired or forged token, unknown
// subject) produces the same 401 body.
func (m *AuthMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := m.authService.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{
		Message: "could not validate credentials",
	})
}

// CurrentUser returns the user placed on the context by SessionRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
