package possync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

func TestResolve_MissingKey(t *testing.T) {
	resolver := NewResolver(newFakeRestaurantStore())

	_, err := resolver.Resolve(context.Background(), "")
	assert.Equal(t, ErrMissingAPIKey, err)

	_, err = resolver.Resolve(context.Background(), "   ")
	assert.Equal(t, ErrMissingAPIKey, err)
}

func TestResolve_UnknownKey(t *testing.T) {
	resolver := NewResolver(newFakeRestaurantStore(activeRestaurant()))

	_, err := resolver.Resolve(context.Background(), "nosuchkey")
	assert.Equal(t, ErrInvalidAPIKey, err)
}

func TestResolve_InactiveRestaurant(t *testing.T) {
	restaurant := activeRestaurant()
	restaurant.Status = models.RestaurantStatusInactive
	resolver := NewResolver(newFakeRestaurantStore(restaurant))

	_, err := resolver.Resolve(context.Background(), restaurant.ApiKey)
	assert.Equal(t, ErrInactiveRestaurant, err)
}

func TestResolve_ActiveRestaurant(t *testing.T) {
	restaurant := activeRestaurant()
	resolver := NewResolver(newFakeRestaurantStore(restaurant))

	got, err := resolver.Resolve(context.Background(), restaurant.ApiKey)
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, got.ID)
}
