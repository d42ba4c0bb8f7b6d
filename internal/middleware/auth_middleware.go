package middleware

import (
	"github.com/gin-gonic/gin"
	authz "github.com/yigit/jobly/internal/app/auth"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/auth"
)

const identityKey = "identity"

// ErrUnauthorized is reported by every guard
var ErrUnauthorized = apperrors.NewUnauthorizedError("Unauthorized")

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate verifies a bearer token when one is sent and stores the
// caller's identity on the context. Requests without an Authorization header
// pass through anonymously.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(identityKey, &authz.Identity{
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		})
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or nil for anonymous requests
func CurrentIdentity(c *gin.Context) *authz.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, _ := v.(*authz.Identity)
	return id
}

// EnsureLoggedIn rejects anonymous requests
func EnsureLoggedIn() gin.HandlerFunc {
	return guard(func(c *gin.Context, id *authz.Identity) bool {
		return authz.IsLoggedIn(id)
	})
}

// EnsureAdmin rejects callers without the admin flag
func EnsureAdmin() gin.HandlerFunc {
	return guard(func(c *gin.Context, id *authz.Identity) bool {
		return authz.IsAdmin(id)
	})
}

// EnsureCorrectUserOrAdmin admits admins, and users acting on their own
// :username path parameter
func EnsureCorrectUserOrAdmin() gin.HandlerFunc {
	return guard(func(c *gin.Context, id *authz.Identity) bool {
		return authz.IsSelfOrAdmin(id, c.Param("username"))
	})
}

func guard(allowed func(c *gin.Context, id *authz.Identity) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(c, CurrentIdentity(c)) {
			abortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
