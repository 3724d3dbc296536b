package service

import (
	"testing"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/db/dbtest"
	"github.com/ikkim/storerate-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

type testServices struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	revokedRepo repository.RevokedTokenRepository
	hasher      *util.PasswordHasher
	revocations RevocationService
	auth        AuthService
	ratings     RatingService
	stores      StoreService
	admin       AdminService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	testDB, err := dbtest.Setup(t)
	require.NoError(t, err)

	s := &testServices{
		db:          testDB,
		userRepo:    repository.NewUserRepository(testDB),
		storeRepo:   repository.NewStoreRepository(testDB),
		ratingRepo:  repository.NewRatingRepository(testDB),
		revokedRepo: repository.NewRevokedTokenRepository(testDB),
		hasher:      util.NewPasswordHasher(bcrypt.MinCost),
	}
	s.revocations = NewRevocationService(s.revokedRepo, nil, 48*time.Hour)
	s.auth = NewAuthService(s.userRepo, s.revocations, s.hasher, testJWTSecret, time.Hour)
	s.ratings = NewRatingService(s.ratingRepo, s.storeRepo)
	s.stores = NewStoreService(s.storeRepo, s.ratingRepo)
	s.admin = NewAdminService(s.userRepo, s.storeRepo, s.ratingRepo, s.hasher)
	return s
}
