package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/database"
	"legacyestates/internal/domain"
	"legacyestates/internal/util"
)

const userContextKey = "user"

// RequireAuth validates the Bearer token and loads the user into the
// request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := util.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := util.GetUserFromToken(database.GetDB(), claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user account is inactive"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireStaff allows staff or admin users; must run after RequireAuth
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || (!user.IsStaff && !user.IsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff or admin access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admin users only; must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the request context, or
// nil outside an authenticated route.
func CurrentUser(c *gin.Context) *domain.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
