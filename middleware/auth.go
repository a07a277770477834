package middleware

import (
	"strings"

	"restay/response"
	"restay/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and, when roles are given,
// requires one of them.
func AuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userInfo, err := services.GetUserFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userInfo.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userInfo.UserID)
		c.Set("userRole", userInfo.Role)
		c.Next()
	}
}

// RoleMiddleware requires one of the given roles on a request already
// authenticated upstream.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role := userRole.(string)
		hasRole := false
		for _, r := range roles {
			if r == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
