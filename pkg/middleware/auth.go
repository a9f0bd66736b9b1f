package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/pkg/jwt"
)

const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	RolesKey      = "roles"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	authCookieKey = "auth_token"

	RoleAdmin = "admin"
)

// AuthMiddleware resolves the viewer identity from a signed access token.
// Tokens are issued by the external identity system; this service only
// validates them.
type AuthMiddleware struct {
	tokens   *jwt.Manager
	loginURL string
}

// NewAuthMiddleware creates a new auth middleware.
// loginURL is where anonymous users are sent when a route requires auth.
func NewAuthMiddleware(tokens *jwt.Manager, loginURL string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, loginURL: loginURL}
}

// RequireAuth redirects anonymous requests to the login page, preserving
// the original path in the next parameter for post-login redirect.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.resolve(c)
		if claims == nil {
			loc := m.loginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(302, loc)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RolesKey, claims.Roles)
		c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a valid token is present
// and lets the request through either way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.resolve(c); claims != nil {
			c.Set(UserIDKey, claims.UserID)
			c.Set(UsernameKey, claims.Username)
			c.Set(RolesKey, claims.Roles)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) *jwt.Claims {
	token := ""
	if h := c.GetHeader(AuthHeaderKey); strings.HasPrefix(h, BearerPrefix) {
		token = strings.TrimPrefix(h, BearerPrefix)
	} else if v, err := c.Cookie(authCookieKey); err == nil {
		token = v
	}
	if token == "" {
		return nil
	}

	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil
	}
	return claims
}

// GetUserID extracts the viewer's user ID from the Gin context.
// Empty string means the viewer is anonymous.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetUsername extracts the viewer's username from the Gin context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(UsernameKey); exists {
		return username.(string)
	}
	return ""
}

// IsAdmin reports whether the viewer carries the admin role.
func IsAdmin(c *gin.Context) bool {
	if roles, exists := c.Get(RolesKey); exists {
		for _, r := range roles.([]string) {
			if r == RoleAdmin {
				return true
			}
		}
	}
	return false
}
