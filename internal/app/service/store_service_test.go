package service

import (
	"context"
	"testing"

	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreService_ListForUser(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := createRater(t, s, "jon@example.com")
	other := createRater(t, s, "ann@example.com")
	rated := createShop(t, s, "alpha@example.com")
	unrated := createShop(t, s, "beta@example.com")

	_, err := s.ratings.Submit(ctx, user.ID, rated.ID, 4)
	require.NoError(t, err)
	_, err = s.ratings.Submit(ctx, other.ID, rated.ID, 3)
	require.NoError(t, err)

	views, err := s.stores.ListForUser(ctx, user.ID, repository.StoreFilter{SortBy: "name", SortOrder: repository.SortAsc})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, rated.ID, views[0].ID)
	assert.Equal(t, "3.50", views[0].Rating)
	assert.Equal(t, int64(2), views[0].TotalRatings)
	require.NotNil(t, views[0].UserRating)
	assert.Equal(t, 4, *views[0].UserRating)

	assert.Equal(t, unrated.ID, views[1].ID)
	assert.Equal(t, "0.00", views[1].Rating)
	assert.Nil(t, views[1].UserRating)
}

func TestStoreService_OwnerDashboard(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	created, err := s.admin.CreateStore(ctx, StoreInput{Name: "Corner Grocery", Email: "shop@example.com", Address: "1 Market Road"})
	require.NoError(t, err)

	first := createRater(t, s, "a@example.com")
	second := createRater(t, s, "b@example.com")
	third := createRater(t, s, "c@example.com")
	for user, value := range map[uint]int{first.ID: 4, second.ID: 4, third.ID: 5} {
		_, err := s.ratings.Submit(ctx, user, created.Store.ID, value)
		require.NoError(t, err)
	}

	dashboard, err := s.stores.OwnerDashboard(ctx, created.Owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", dashboard.Store.Name)
	assert.Equal(t, "4.3", dashboard.Store.AverageRating)
	assert.Equal(t, int64(3), dashboard.Store.TotalRatings)
	assert.Len(t, dashboard.RatingsFromUsers, 3)

	_, err = s.stores.OwnerDashboard(ctx, first.ID)
	assert.ErrorIs(t, err, ErrOwnerStoreNotFound)
}

func TestStoreService_ListStores(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	createShop(t, s, "alpha@example.com")
	createShop(t, s, "beta@example.com")

	views, err := s.stores.ListStores(ctx, repository.StoreFilter{Email: "beta"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "beta@example.com", views[0].Email)
	assert.Equal(t, "0.00", views[0].Rating)
}
