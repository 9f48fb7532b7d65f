package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"socialmall/internal/model"
	jwtutils "socialmall/internal/utils"
	"socialmall/pkg/utils"
)

const (
	// AuthorizationHeader authorization header name
	AuthorizationHeader = "Authorization"
	// BearerPrefix bearer token prefix
	BearerPrefix = "Bearer "
	// UserIDKey user ID key in the gin context
	UserIDKey = "user_id"
	// UsernameKey username key in the gin context
	UsernameKey = "username"
	// UserRoleKey user role key in the gin context
	UserRoleKey = "user_role"
	// TokenKey raw token key in the gin context
	TokenKey = "token"
)

// TokenValidator validates a bearer token and returns its claims
type TokenValidator func(ctx context.Context, token string) (*jwtutils.JWTClaims, error)

// Auth bearer-token authentication middleware
func Auth(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			utils.AppErrorResponse(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := validate(c.Request.Context(), token)
		if err != nil {
			utils.AppErrorResponse(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRoleKey, claims.Role)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users; must run after Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != model.RoleAdmin {
			utils.AppErrorResponse(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user ID from the context
func CurrentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// IsAdmin reports whether the authenticated user is an admin
func IsAdmin(c *gin.Context) bool {
	return c.GetString(UserRoleKey) == model.RoleAdmin
}
