package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shoppro/storefront/internal/domain/entity"
	domainerr "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
)

// currentUserKey is the gin context key holding the authenticated user
const currentUserKey = "currentUser"

// Authenticator resolves a bearer token to the account it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// RequireSession rejects requests without a valid bearer token and
// stores the resolved user in the request context
func RequireSession(auth Authenticator, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeInvalidCredentials,
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if domainerr.IsBackendUnavailableError(err) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponse{
					Code:    domainerr.CodeBackendUnavailable,
					Message: "Service temporarily unavailable",
				})
				return
			}

			logger.Warn("Session token rejected", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeInvalidCredentials,
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests from non-admin accounts.
// Must run after RequireSession; the admin check uses the stored user
// record, never the token's role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.CodeAdminRequired,
				Message: "Admin role required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireSession
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
