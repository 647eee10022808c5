package possync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

// CreateRestaurantHandler provisions a tenant and mints its API key. The key
// is returned exactly once, here.
func CreateRestaurantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		if req.OpeningTime != "" {
			if _, err := ParseTimeOfDay(req.OpeningTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "openingTime must be HH:MM"})
				return
			}
		}
		if req.ClosingTime != "" {
			if _, err := ParseTimeOfDay(req.ClosingTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "closingTime must be HH:MM"})
				return
			}
		}
		restaurant, err := models.CreateRestaurant(c.Request.Context(), &models.NewRestaurant{
			Name:        req.Name,
			Keyword:     req.Keyword,
			Description: req.Description,
			Address:     req.Address,
			PhoneNumber: req.PhoneNumber,
			OpeningTime: utils.NilIfEmpty(req.OpeningTime),
			ClosingTime: utils.NilIfEmpty(req.ClosingTime),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateRestaurantResponse{
			RestaurantId: restaurant.ID.String(),
			ApiKey:       restaurant.ApiKey,
		})
	}
}

func UpdateRestaurantStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		var req struct {
			Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		if err := models.UpdateRestaurantStatus(c.Request.Context(), id, models.RestaurantStatus(req.Status)); err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	}
}

// CreateUserHandler provisions a dashboard user with a generated one-time
// password tied to a primary restaurant.
func CreateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		if req.Role != "" && !models.IsValidUserRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "Unknown user role"})
			return
		}
		restaurantId, err := uuid.Parse(req.RestaurantId)
		if err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		if _, err := models.GetRestaurantById(c.Request.Context(), restaurantId); err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		password := utils.GeneratePassword()
		user, err := models.CreateUser(c.Request.Context(), &models.NewUser{
			Email:               req.Email,
			FullName:            req.FullName,
			MobileNumber:        req.MobileNumber,
			Password:            password,
			Role:                models.UserRole(req.Role),
			PrimaryRestaurantId: &restaurantId,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateUserResponse{
			UserId:          user.ID.String(),
			InitialPassword: password,
		})
	}
}

// AssociateUserRestaurantHandler grants an existing user access to another
// restaurant's dashboard.
func AssociateUserRestaurantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "Invalid user id"})
			return
		}
		var req struct {
			RestaurantId string `json:"restaurantId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		restaurantId, err := uuid.Parse(req.RestaurantId)
		if err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		if _, err := models.GetRestaurantById(c.Request.Context(), restaurantId); err != nil {
			respondError(c, ErrRestaurantNotFound)
			return
		}
		if err := models.AssociateUserRestaurant(c.Request.Context(), userId, restaurantId); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Restaurant associated"})
	}
}
