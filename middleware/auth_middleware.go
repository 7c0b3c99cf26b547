package middleware

import (
	"net/http"
	"strings"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware validates the Bearer JWT from the Authorization
// header and injects the principal (userID, role) into the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_or_invalid_authorization_header", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "empty_token", nil))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			c.Abort()
			return
		}

		role, ok := authz.ParseRole(claims.Role)
		if !ok {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", "unknown_role", nil))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", string(role))

		c.Next()
	}
}

// RequireRoles aborts with 403 unless the authenticated principal has
// one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := authz.Role(c.GetString("role"))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Access denied", "forbidden", nil))
		c.Abort()
	}
}

// PrincipalID returns the authenticated user's UUID from the context.
func PrincipalID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok2 := v.(uuid.UUID); ok2 && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
