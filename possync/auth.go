package possync

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

func userInfo(user *models.User) UserInfo {
	return UserInfo{
		Id:          user.ID.String(),
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		Restaurants: associatedRestaurants(user),
	}
}

// LoginHandler exchanges email and password for a JWT. Bad email and bad
// password answer identically.
func LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		user, err := models.GetUserByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "INVALID_CREDENTIALS", "message": "Email or password is incorrect"})
			return
		}
		if err := utils.ComparePassword(user.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "INVALID_CREDENTIALS", "message": "Email or password is incorrect"})
			return
		}
		token, err := utils.JwtGenerate(user.ID.String(), user.Email, string(user.Role))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{
			Token:              token,
			MustChangePassword: utils.DereferencePtr(user.MustChangePassword),
			User:               userInfo(user),
		})
	}
}

func ChangePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		if err := models.ChangeUserPassword(c.Request.Context(), user.Email, req.CurrentPassword, req.NewPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_CREDENTIALS", "message": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}

func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, userInfo(user))
	}
}
