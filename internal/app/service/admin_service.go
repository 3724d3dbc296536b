package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	minNameLength = 20
	maxNameLength = 60

	shortOwnerNamePrefix = "Store Owner Account for "
)

type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// UserDetails is an account as shown to admins. Store is set for store
// owners that have one.
type UserDetails struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Address string         `json:"address"`
	Role    model.UserRole `json:"role"`
	Store   *StoreView     `json:"store,omitempty"`
}

// StoreInput creates a store. With OwnerID set the store is attached to an
// existing store owner; otherwise a new store owner account is created
// with the store's email, using Password or a generated one.
type StoreInput struct {
	Name      string
	Email     string
	Address   string
	Password  string
	OwnerName string
	OwnerID   uint
}

// StoreCreation is the result of CreateStore. OwnerPassword is only set
// when a new owner account was created and is never stored in plain text.
type StoreCreation struct {
	Store         *model.Store
	Owner         *model.User
	OwnerPassword string
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error)
	GetUserDetails(ctx context.Context, id uint) (*UserDetails, error)
	CreateStore(ctx context.Context, input StoreInput) (*StoreCreation, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	hasher     *util.PasswordHasher
}

func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	hasher *util.PasswordHasher,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		hasher:     hasher,
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *adminService) GetUserDetails(ctx context.Context, id uint) (*UserDetails, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	details := &UserDetails{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    user.Role,
	}
	if user.Role != model.RoleStoreOwner {
		return details, nil
	}

	store, err := s.storeRepo.FindByOwnerID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return details, nil
	}
	if err != nil {
		return nil, err
	}
	withRating, err := s.storeRepo.FindWithRating(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	view := newStoreView(*withRating)
	details.Store = &view
	return details, nil
}

func (s *adminService) CreateStore(ctx context.Context, input StoreInput) (*StoreCreation, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)

	if input.OwnerID != 0 {
		return s.createForExistingOwner(ctx, input)
	}
	return s.createWithNewOwner(ctx, input)
}

func (s *adminService) createForExistingOwner(ctx context.Context, input StoreInput) (*StoreCreation, error) {
	owner, err := s.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Role != model.RoleStoreOwner {
		return nil, ErrOwnerRoleRequired
	}

	_, err = s.storeRepo.FindByOwnerID(ctx, owner.ID)
	if err == nil {
		return nil, ErrOwnerAlreadyHasStore
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	store := &model.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: owner.ID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrOwnerAlreadyHasStore
		}
		return nil, err
	}

	logger.Info("Store created for existing owner", map[string]interface{}{
		"store_id": store.ID,
		"owner_id": owner.ID,
	})
	return &StoreCreation{Store: store, Owner: owner}, nil
}

func (s *adminService) createWithNewOwner(ctx context.Context, input StoreInput) (*StoreCreation, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	password := input.Password
	if password == "" {
		password, err = util.GeneratePassword()
		if err != nil {
			return nil, apperrors.Internal("Failed to create store", err)
		}
	}
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to create store", err)
	}

	owner := &model.User{
		Name:         ownerName(input),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Address:      input.Address,
		Role:         model.RoleStoreOwner,
	}
	store := &model.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}
	if err := s.storeRepo.CreateWithOwner(ctx, owner, store); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		logger.Error("Failed to create store with owner", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	logger.Info("Store created with new owner account", map[string]interface{}{
		"store_id":           store.ID,
		"owner_id":           owner.ID,
		"generated_password": input.Password == "",
	})
	return &StoreCreation{Store: store, Owner: owner, OwnerPassword: password}, nil
}

// ownerName falls back to "<store name> Owner". Names that would fall
// below the account minimum use a longer prefix instead; the result is cut
// to the account maximum.
func ownerName(input StoreInput) string {
	if name := strings.TrimSpace(input.OwnerName); name != "" {
		return name
	}
	storeName := strings.TrimSpace(input.Name)
	name := storeName + " Owner"
	if len([]rune(name)) < minNameLength {
		name = shortOwnerNamePrefix + storeName
	}
	if runes := []rune(name); len(runes) > maxNameLength {
		name = strings.TrimSpace(string(runes[:maxNameLength]))
	}
	return name
}
