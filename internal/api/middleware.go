package api

import (
	"errors"
	"net/http"
	"strings"

	"fitbuzz/fitness-api/internal/auth"
	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Context key for the authenticated user.
const ContextUserKey = "currentUser"

// Cookie carrying the auth token.
const TokenCookieName = "token"

// extractToken pulls the candidate token from the request: the auth cookie
// is preferred, the Authorization header is the fallback.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware creates a Gin middleware that authenticates the request.
// It verifies the token, loads the acting user and attaches it to the
// request context. Any failure is a 401.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, "Not authorized, no token provided")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				abortWithError(c, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				abortWithError(c, http.StatusUnauthorized, "Not authorized, token failed")
			default:
				abortServiceError(c, err)
			}
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// AdminMiddleware gates a route to admin users. Must run AFTER AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			// AuthMiddleware did not run; programming error.
			abortWithError(c, http.StatusInternalServerError, "User not found in context")
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, http.StatusForbidden, "Access denied. Admins only.")
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user attached by AuthMiddleware.
func currentUser(c *gin.Context) (*domain.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	user, ok := raw.(*domain.User)
	if !ok {
		return nil, errors.New("invalid user type in context")
	}
	return user, nil
}
