package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/db/dbtest"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := dbtest.Setup(t)
	require.NoError(t, err)
	return testDB
}

func createUser(t *testing.T, testDB *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:         fmt.Sprintf("Test Account For %s", email),
		Email:        email,
		PasswordHash: "hashedpassword",
		Address:      "1 Test Street",
		Role:         role,
	}
	require.NoError(t, NewUserRepository(testDB).Create(context.Background(), user))
	return user
}

func createStore(t *testing.T, testDB *gorm.DB, name string, owner *model.User) *model.Store {
	t.Helper()
	store := &model.Store{
		Name:    name,
		Email:   fmt.Sprintf("store%d@example.com", owner.ID),
		Address: name + " Address",
		OwnerID: owner.ID,
	}
	require.NoError(t, NewStoreRepository(testDB).Create(context.Background(), store))
	return store
}

func createRating(t *testing.T, testDB *gorm.DB, user *model.User, store *model.Store, value int) *model.Rating {
	t.Helper()
	rating := &model.Rating{UserID: user.ID, StoreID: store.ID, Rating: value}
	require.NoError(t, NewRatingRepository(testDB).Create(context.Background(), rating))
	return rating
}
