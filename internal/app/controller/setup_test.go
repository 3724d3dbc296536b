package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/ikkim/storerate-backend/internal/db/dbtest"
	"github.com/ikkim/storerate-backend/internal/middleware"
	"github.com/ikkim/storerate-backend/internal/storage"
	"github.com/ikkim/storerate-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-jwt-secret-for-controllers"

type memoryReportStorage struct {
	uploads int
}

func (m *memoryReportStorage) Upload(_ context.Context, folder, filename, _ string, body io.Reader) (*storage.StoredObject, error) {
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	m.uploads++
	return &storage.StoredObject{
		Key:         folder + "/" + filename,
		FileURL:     "https://files.example.com/" + folder + "/" + filename,
		DownloadURL: "https://files.example.com/" + folder + "/" + filename + "?signed",
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	}, nil
}

type testServer struct {
	router  *gin.Engine
	auth    service.AuthService
	reports *memoryReportStorage
}

// setupTestServer wires every controller onto the same routes the API
// exposes, backed by an in-memory database
func setupTestServer(t *testing.T, withReportStorage bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := dbtest.Setup(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)
	hasher := util.NewPasswordHasher(bcrypt.MinCost)

	revocations := service.NewRevocationService(repository.NewRevokedTokenRepository(testDB), nil, 48*time.Hour)
	authService := service.NewAuthService(userRepo, revocations, hasher, testJWTSecret, time.Hour)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, hasher)

	ts := &testServer{auth: authService}
	var reports service.ReportStorage
	if withReportStorage {
		ts.reports = &memoryReportStorage{}
		reports = ts.reports
	}
	reportService := service.NewReportService(storeRepo, adminService, reports)

	authCtrl := NewAuthController(authService)
	userCtrl := NewUserController(storeService, ratingService)
	adminCtrl := NewAdminController(authService, adminService, storeService, reportService)
	ownerCtrl := NewStoreOwnerController(storeService)
	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret, revocations)

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	api := r.Group("/api")
	api.POST("/auth/login", authCtrl.Login)

	user := api.Group("/user")
	user.POST("/signup", authCtrl.Signup)
	user.POST("/login", authCtrl.LoginAs(model.RoleUser))
	userAuth := user.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleUser))
	userAuth.PUT("/password", authCtrl.UpdatePassword)
	userAuth.GET("/stores", userCtrl.ListStores)
	userAuth.POST("/ratings", userCtrl.SubmitRating)
	userAuth.PUT("/ratings", userCtrl.UpdateRating)
	userAuth.POST("/logout", authCtrl.Logout)

	admin := api.Group("/admin")
	admin.POST("/login", authCtrl.LoginAs(model.RoleAdmin))
	adminAuth := admin.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin))
	adminAuth.GET("/dashboard/stats", adminCtrl.DashboardStats)
	adminAuth.POST("/users", adminCtrl.CreateUser)
	adminAuth.GET("/users", adminCtrl.ListUsers)
	adminAuth.GET("/users/:id", adminCtrl.GetUser)
	adminAuth.POST("/stores", adminCtrl.CreateStore)
	adminAuth.GET("/stores", adminCtrl.ListStores)
	adminAuth.GET("/stores/export", adminCtrl.ExportStores)
	adminAuth.POST("/reports/stores", adminCtrl.ArchiveStoresReport)
	adminAuth.POST("/logout", authCtrl.Logout)

	owner := api.Group("/store-owner")
	owner.POST("/login", authCtrl.LoginAs(model.RoleStoreOwner))
	ownerAuth := owner.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleStoreOwner))
	ownerAuth.PUT("/password", authCtrl.UpdatePassword)
	ownerAuth.GET("/dashboard", ownerCtrl.Dashboard)
	ownerAuth.POST("/logout", authCtrl.Logout)

	ts.router = r
	return ts
}

// do sends a JSON request and returns the recorder
func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(payload)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// envelope is the response shape with data left raw for per-test decoding
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
	return env
}

type authData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (ts *testServer) createAccount(t *testing.T, name, email, password string, role model.UserRole) *model.User {
	t.Helper()
	user, err := ts.auth.CreateAccount(context.Background(), service.AccountInput{
		Name:     name,
		Email:    email,
		Password: password,
		Address:  "1 Admin Plaza",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (ts *testServer) login(t *testing.T, path, email, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, path, "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data authData
	decodeData(t, w, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	ts.createAccount(t, "Platform Administrator One", "admin@example.com", "Admin@123", model.RoleAdmin)
	return ts.login(t, "/api/admin/login", "admin@example.com", "Admin@123")
}

func (ts *testServer) userToken(t *testing.T, email string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/user/signup", "", signupBody(email))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data authData
	decodeData(t, w, &data)
	return data.Token
}

func signupBody(email string) SignupRequest {
	return SignupRequest{
		Name:     "Jonathan Michael Reynolds",
		Email:    email,
		Password: "Passw0rd!",
		Address:  "12 Elm St",
	}
}
