package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			utils.Fail(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			if err.Error() == "token has expired" {
				utils.Fail(c, http.StatusUnauthorized, "Token has expired")
			} else {
				utils.Fail(c, http.StatusUnauthorized, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		if claims.UnitID != nil {
			c.Set("unit_id", *claims.UnitID)
		}
		c.Next()
	}
}

// ElevatedOnlyMiddleware restricts access to admin and leader users.
func ElevatedOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.UserRole(c.GetString("role"))
		if !role.Elevated() {
			utils.Fail(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnlyMiddleware restricts access to admin users
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != string(models.RoleAdmin) {
			utils.Fail(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerUnitID returns the caller's unit id from the token claims, or
// nil when the caller has no unit.
func CallerUnitID(c *gin.Context) *uint {
	if v, ok := c.Get("unit_id"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
