package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

// JwtAuth validates the bearer token and copies its claims onto the request
// context for the handlers and the tenant guard.
func JwtAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := utils.JwtValidate(raw)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Invalid or expired token"})
			return
		}
		claims, ok := token.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Invalid or expired token"})
			return
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), claims.ID)
		ctx = utils.SetUserEmailInContext(ctx, claims.Email)
		if claims.Role == string(models.UserRoleAdmin) {
			ctx = utils.SetIsAdminInContext(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin role.
// JwtAuth marks admin tokens on the context; the same flag also lifts
// tenant scoping for admin queries.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin, ok := utils.GetIsAdminFromContext(c.Request.Context()); !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "message": "Admin role required"})
			return
		}
		c.Next()
	}
}
