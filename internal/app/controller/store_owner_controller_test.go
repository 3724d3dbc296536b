package controller

import (
	"net/http"
	"testing"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOwnerController_Dashboard(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	store := ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	owner := ts.login(t, "/api/store-owner/login", "shop@example.com", "Shop1234!")

	var dashboard service.OwnerDashboard
	w := ts.do(t, http.MethodGet, "/api/store-owner/dashboard", owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &dashboard)
	assert.Equal(t, store.ID, dashboard.Store.ID)
	assert.Equal(t, "0.0", dashboard.Store.AverageRating)
	assert.Empty(t, dashboard.RatingsFromUsers)

	first := ts.userToken(t, "jon@example.com")
	second := ts.userToken(t, "amy@example.com")
	w = ts.do(t, http.MethodPost, "/api/user/ratings", first, RatingRequest{StoreID: store.ID, Rating: 4})
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(t, http.MethodPost, "/api/user/ratings", second, RatingRequest{StoreID: store.ID, Rating: 5})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/store-owner/dashboard", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &dashboard)
	assert.Equal(t, "4.5", dashboard.Store.AverageRating)
	assert.Equal(t, int64(2), dashboard.Store.TotalRatings)
	require.Len(t, dashboard.RatingsFromUsers, 2)
	assert.Equal(t, "amy@example.com", dashboard.RatingsFromUsers[0].UserEmail)
}

func TestStoreOwnerController_Dashboard_NoStore(t *testing.T) {
	ts := setupTestServer(t, false)
	ts.createAccount(t, "Owner Without Any Store", "owner@example.com", "Owner@123", model.RoleStoreOwner)
	owner := ts.login(t, "/api/store-owner/login", "owner@example.com", "Owner@123")

	w := ts.do(t, http.MethodGet, "/api/store-owner/dashboard", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Store not found for this owner", decode(t, w).Message)
}

func TestStoreOwnerController_PasswordAndLogout(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	owner := ts.login(t, "/api/store-owner/login", "shop@example.com", "Shop1234!")

	w := ts.do(t, http.MethodPut, "/api/store-owner/password", owner, UpdatePasswordRequest{
		CurrentPassword: "Shop1234!",
		NewPassword:     "Sh0pNew#99",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/store-owner/logout", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/store-owner/dashboard", owner, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
