package possync

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/models"
)

// Resolver authenticates POS clients by API key.
type Resolver struct {
	restaurants RestaurantStore
	logger      *logrus.Logger
}

func NewResolver(restaurants RestaurantStore) *Resolver {
	return &Resolver{
		restaurants: restaurants,
		logger:      config.GetLogger(),
	}
}

// Resolve maps an API key to its restaurant. Unknown keys and lookup errors
// are reported identically so the caller learns nothing about which keys
// exist.
func (r *Resolver) Resolve(ctx context.Context, apiKey string) (*models.Restaurant, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	restaurant, err := r.restaurants.FindByApiKey(ctx, apiKey)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"module":   "possync",
			"funcName": "Resolve",
		}).Warn("api key lookup failed")
		return nil, ErrInvalidAPIKey
	}
	if restaurant.Status != models.RestaurantStatusActive {
		r.logger.WithFields(logrus.Fields{
			"module":       "possync",
			"funcName":     "Resolve",
			"restaurantId": restaurant.ID.String(),
		}).Warn("sync attempt for inactive restaurant")
		return nil, ErrInactiveRestaurant
	}
	return restaurant, nil
}
