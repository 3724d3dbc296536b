package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/internal/app/controller"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/ikkim/storerate-backend/internal/db/dbtest"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
	"github.com/ikkim/storerate-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-jwt-secret-for-router"

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	testDB, err := dbtest.Setup(t)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: "test", Environment: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	userRepo := repository.NewUserRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)
	hasher := util.NewPasswordHasher(bcrypt.MinCost)

	revocations := service.NewRevocationService(repository.NewRevokedTokenRepository(testDB), nil, 48*time.Hour)
	authService := service.NewAuthService(userRepo, revocations, hasher, testJWTSecret, time.Hour)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, hasher)
	reportService := service.NewReportService(storeRepo, adminService, nil)

	r := NewRouter(
		controller.NewAuthController(authService),
		controller.NewUserController(storeService, service.NewRatingService(ratingRepo, storeRepo)),
		controller.NewAdminController(authService, adminService, storeService, reportService),
		controller.NewStoreOwnerController(storeService),
		middleware.NewAuthMiddleware(testJWTSecret, revocations),
		cfg,
	)
	return r.Setup()
}

func TestRouter_Health(t *testing.T) {
	handler := setupRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_NoRoute(t *testing.T) {
	handler := setupRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env apperrors.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestRouter_ProtectedGroupsRequireToken(t *testing.T) {
	handler := setupRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user/stores"},
		{http.MethodPost, "/api/user/ratings"},
		{http.MethodPut, "/api/user/password"},
		{http.MethodGet, "/api/admin/dashboard/stats"},
		{http.MethodGet, "/api/admin/users/1"},
		{http.MethodGet, "/api/admin/stores/export"},
		{http.MethodPost, "/api/admin/reports/stores"},
		{http.MethodGet, "/api/store-owner/dashboard"},
		{http.MethodPost, "/api/store-owner/logout"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_SignupAndLoginFlow(t *testing.T) {
	handler := setupRouter(t)

	body := `{"name":"Jonathan Michael Reynolds","email":"jon@example.com","password":"Passw0rd!","address":"12 Elm St"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jon@example.com","password":"Passw0rd!"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
