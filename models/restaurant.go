package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the tenant: one onboarded venue, the unit of data isolation.
// ApiKey is the credential POS terminals present on sync calls.
type Restaurant struct {
	ID          uuid.UUID        `gorm:"type:char(36);primary_key" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name" binding:"required"`
	Keyword     string           `gorm:"size:100" json:"keyword"`
	Description string           `gorm:"type:text" json:"description"`
	Address     string           `gorm:"type:text" json:"address"`
	PhoneNumber string           `gorm:"size:20" json:"phone_number"`
	ApiKey      string           `gorm:"size:32;uniqueIndex;not null" json:"-"`
	Status      RestaurantStatus `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	// Local times of day in "HH:MM". Closing earlier than opening means the
	// business day crosses midnight.
	OpeningTime *string   `gorm:"size:8" json:"opening_time"`
	ClosingTime *string   `gorm:"size:8" json:"closing_time"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type NewRestaurant struct {
	Name        string  `json:"name" binding:"required"`
	Keyword     string  `json:"keyword"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

/*
caches:
	Restaurant:ApiKey:$apiKey
*/

const restaurantApiKeyCacheTTL = 5 * time.Minute

func restaurantApiKeyCacheKey(apiKey string) string {
	return "Restaurant:ApiKey:" + apiKey
}

func (r Restaurant) RemoveInstanceRedis() error {
	return config.RemoveRedisKey(restaurantApiKeyCacheKey(r.ApiKey))
}

// CreateRestaurant provisions a new venue with a generated POS API key.
func CreateRestaurant(ctx context.Context, input *NewRestaurant) (*Restaurant, error) {
	restaurant := Restaurant{
		Name:        input.Name,
		Keyword:     input.Keyword,
		Description: input.Description,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		ApiKey:      utils.GenerateApiKey(),
		Status:      RestaurantStatusActive,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetRestaurantByApiKey looks the tenant up by its sync credential.
// Hot path for every batch call, so results are cached briefly in redis.
func GetRestaurantByApiKey(ctx context.Context, apiKey string) (*Restaurant, error) {
	var restaurant Restaurant
	found, err := config.GetRedisObject(restaurantApiKeyCacheKey(apiKey), &restaurant)
	if err == nil && found {
		return &restaurant, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Where("api_key = ?", apiKey).Take(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	_ = config.SetRedisObject(restaurantApiKeyCacheKey(apiKey), restaurant, restaurantApiKeyCacheTTL)
	return &restaurant, nil
}

func GetRestaurantById(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	var restaurant Restaurant
	db := config.GetDB()
	err := db.WithContext(ctx).Where("id = ?", id).Take(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// UpdateRestaurantStatus flips a tenant between ACTIVE and INACTIVE and
// drops the cached credential lookup so the change takes effect promptly.
func UpdateRestaurantStatus(ctx context.Context, id uuid.UUID, status RestaurantStatus) error {
	restaurant, err := GetRestaurantById(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(restaurant).Update("status", status).Error; err != nil {
		return err
	}
	return restaurant.RemoveInstanceRedis()
}
