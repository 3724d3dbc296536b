package controller

import (
	"net/http"
	"testing"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/service"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createStore(t *testing.T, admin, name, email string) model.Store {
	t.Helper()
	body := createStoreBody(email, "Shop1234!")
	body.Name = name
	w := ts.do(t, http.MethodPost, "/api/admin/stores", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created storeCreatedData
	decodeData(t, w, &created)
	return created.Store
}

func TestUserController_Rating_Scenario(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	store := ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	token := ts.userToken(t, "jon@example.com")

	w := ts.do(t, http.MethodPost, "/api/user/ratings", token, RatingRequest{StoreID: store.ID, Rating: 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rating model.Rating
	decodeData(t, w, &rating)
	assert.Equal(t, 4, rating.Rating)

	w = ts.do(t, http.MethodPost, "/api/user/ratings", token, RatingRequest{StoreID: store.ID, Rating: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.RatingAlreadyExists, decode(t, w).Code)

	w = ts.do(t, http.MethodPut, "/api/user/ratings", token, RatingRequest{StoreID: store.ID, Rating: 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stores []service.UserStoreView
	w = ts.do(t, http.MethodGet, "/api/user/stores", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &stores)
	require.Len(t, stores, 1)
	assert.Equal(t, "5.00", stores[0].Rating)
	assert.Equal(t, int64(1), stores[0].TotalRatings)
	require.NotNil(t, stores[0].UserRating)
	assert.Equal(t, 5, *stores[0].UserRating)
}

func TestUserController_UpdateRating_NotRated(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	store := ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	token := ts.userToken(t, "jon@example.com")

	w := ts.do(t, http.MethodPut, "/api/user/ratings", token, RatingRequest{StoreID: store.ID, Rating: 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.RatingNotFound, decode(t, w).Code)
}

func TestUserController_SubmitRating_Rejections(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	store := ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	token := ts.userToken(t, "jon@example.com")

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"rating above range", RatingRequest{StoreID: store.ID, Rating: 6}, http.StatusBadRequest},
		{"rating zero", RatingRequest{StoreID: store.ID, Rating: 0}, http.StatusBadRequest},
		{"missing store", RatingRequest{Rating: 3}, http.StatusBadRequest},
		{"fractional rating", `{"store_id": 1, "rating": 3.5}`, http.StatusBadRequest},
		{"unknown store", RatingRequest{StoreID: 9999, Rating: 3}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/user/ratings", token, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestUserController_ListStores_FilterAndUnrated(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	ts.createStore(t, admin, "Book Nook", "books@example.com")
	token := ts.userToken(t, "jon@example.com")

	var stores []service.UserStoreView
	w := ts.do(t, http.MethodGet, "/api/user/stores?sortBy=name&sortOrder=asc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &stores)
	require.Len(t, stores, 2)
	assert.Equal(t, "Book Nook", stores[0].Name)
	assert.Equal(t, "0.00", stores[0].Rating)
	assert.Nil(t, stores[0].UserRating)
	assert.Contains(t, w.Body.String(), `"userRating":null`)

	w = ts.do(t, http.MethodGet, "/api/user/stores?name=grocery", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &stores)
	require.Len(t, stores, 1)
	assert.Equal(t, "Corner Grocery", stores[0].Name)
}

func TestUserController_RequiresUserRole(t *testing.T) {
	ts := setupTestServer(t, false)
	admin := ts.adminToken(t)
	ts.createStore(t, admin, "Corner Grocery", "shop@example.com")
	owner := ts.login(t, "/api/store-owner/login", "shop@example.com", "Shop1234!")

	for _, token := range []string{admin, owner} {
		w := ts.do(t, http.MethodGet, "/api/user/stores", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}
