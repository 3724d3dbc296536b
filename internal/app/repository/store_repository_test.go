package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStoreRepository_CreateOnePerOwner(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewStoreRepository(testDB)
	ctx := context.Background()
	owner := createUser(t, testDB, "owner@example.com", model.RoleStoreOwner)

	createStore(t, testDB, "Corner Grocery", owner)

	err := repo.Create(ctx, &model.Store{Name: "Second", Email: "second@example.com", Address: "x", OwnerID: owner.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	found, err := repo.FindByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Grocery", found.Name)
}

func TestStoreRepository_CreateWithOwner(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewStoreRepository(testDB)
	ctx := context.Background()

	owner := &model.User{
		Name:         "Owner Of The Corner Grocery",
		Email:        "shop@example.com",
		PasswordHash: "hash",
		Address:      "1 Market Road",
		Role:         model.RoleStoreOwner,
	}
	store := &model.Store{Name: "Corner Grocery", Email: "shop@example.com", Address: "1 Market Road"}

	require.NoError(t, repo.CreateWithOwner(ctx, owner, store))
	assert.NotZero(t, owner.ID)
	assert.Equal(t, owner.ID, store.OwnerID)

	found, err := repo.FindByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, found.OwnerID)
}

func TestStoreRepository_CreateWithOwnerRollsBack(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewStoreRepository(testDB)
	ctx := context.Background()
	createUser(t, testDB, "taken@example.com", model.RoleUser)

	owner := &model.User{
		Name:         "Owner Of The Corner Grocery",
		Email:        "taken@example.com",
		PasswordHash: "hash",
		Address:      "1 Market Road",
		Role:         model.RoleStoreOwner,
	}
	err := repo.CreateWithOwner(ctx, owner, &model.Store{Name: "Corner Grocery", Email: "s@example.com", Address: "a"})
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStoreRepository_ListWithRatings(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewStoreRepository(testDB)
	ctx := context.Background()

	ownerA := createUser(t, testDB, "a@owner.com", model.RoleStoreOwner)
	ownerB := createUser(t, testDB, "b@owner.com", model.RoleStoreOwner)
	ownerC := createUser(t, testDB, "c@owner.com", model.RoleStoreOwner)
	alpha := createStore(t, testDB, "Alpha Bakery", ownerA)
	beta := createStore(t, testDB, "Beta Books", ownerB)
	createStore(t, testDB, "Gamma Garage", ownerC)

	rater1 := createUser(t, testDB, "r1@example.com", model.RoleUser)
	rater2 := createUser(t, testDB, "r2@example.com", model.RoleUser)
	createRating(t, testDB, rater1, alpha, 4)
	createRating(t, testDB, rater2, alpha, 5)
	createRating(t, testDB, rater1, beta, 2)

	t.Run("Aggregates per store", func(t *testing.T) {
		stores, err := repo.ListWithRatings(ctx, StoreFilter{SortBy: "name", SortOrder: SortAsc})
		require.NoError(t, err)
		require.Len(t, stores, 3)

		assert.Equal(t, "Alpha Bakery", stores[0].Name)
		assert.InDelta(t, 4.5, stores[0].AverageRating, 1e-9)
		assert.Equal(t, int64(2), stores[0].TotalRatings)

		assert.InDelta(t, 2.0, stores[1].AverageRating, 1e-9)
		assert.Equal(t, int64(1), stores[1].TotalRatings)

		assert.Equal(t, "Gamma Garage", stores[2].Name)
		assert.Zero(t, stores[2].AverageRating)
		assert.Zero(t, stores[2].TotalRatings)
	})

	t.Run("Sort by rating", func(t *testing.T) {
		stores, err := repo.ListWithRatings(ctx, StoreFilter{SortBy: "rating", SortOrder: SortDesc})
		require.NoError(t, err)
		require.Len(t, stores, 3)
		assert.Equal(t, "Alpha Bakery", stores[0].Name)
		assert.Equal(t, "Gamma Garage", stores[2].Name)
	})

	t.Run("Filters by name and address", func(t *testing.T) {
		stores, err := repo.ListWithRatings(ctx, StoreFilter{Name: "books"})
		require.NoError(t, err)
		require.Len(t, stores, 1)
		assert.Equal(t, beta.ID, stores[0].ID)

		stores, err = repo.ListWithRatings(ctx, StoreFilter{Address: "GARAGE"})
		require.NoError(t, err)
		require.Len(t, stores, 1)
	})

	t.Run("Empty result is not nil", func(t *testing.T) {
		stores, err := repo.ListWithRatings(ctx, StoreFilter{Email: "nothing-matches"})
		require.NoError(t, err)
		assert.NotNil(t, stores)
		assert.Empty(t, stores)
	})

	t.Run("Single store", func(t *testing.T) {
		found, err := repo.FindWithRating(ctx, alpha.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), found.TotalRatings)

		_, err = repo.FindWithRating(ctx, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestStoreRepository_FilterWildcardsMatchLiterally(t *testing.T) {
	testDB := setupTestDB(t)
	repo := NewStoreRepository(testDB)
	ctx := context.Background()

	createStore(t, testDB, "Corner Grocery", createUser(t, testDB, "a@owner.com", model.RoleStoreOwner))
	createStore(t, testDB, "100% Organic_Market", createUser(t, testDB, "b@owner.com", model.RoleStoreOwner))

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"percent", "%", []string{"100% Organic_Market"}},
		{"underscore", "_", []string{"100% Organic_Market"}},
		{"percent inside word", "0% org", []string{"100% Organic_Market"}},
		{"backslash", `\`, []string{}},
		{"plain substring", "grocery", []string{"Corner Grocery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores, err := repo.ListWithRatings(ctx, StoreFilter{Name: tt.filter})
			require.NoError(t, err)
			names := make([]string, 0, len(stores))
			for _, s := range stores {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
