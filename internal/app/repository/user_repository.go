package repository

import (
	"context"
	"strings"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"gorm.io/gorm"
)

// UserFilter narrows the admin account listing
type UserFilter struct {
	Name      string
	Email     string
	Address   string
	Role      model.UserRole
	SortBy    string
	SortOrder SortOrder
}

var userSortColumns = map[string]string{
	"name":       "users.name",
	"email":      "users.email",
	"role":       "users.role",
	"address":    "users.address",
	"created_at": "users.created_at",
	"createdAt":  "users.created_at",
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches the lower-cased address; emails are stored lower-cased
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	logger.Debug("Finding user by email in database", map[string]interface{}{
		"email": email,
	})

	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	logger.Debug("Updating user password in database", map[string]interface{}{
		"user_id": id,
	})

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if result.Error != nil {
		logger.Error("Failed to update user password in database", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	logger.Debug("Listing users", map[string]interface{}{
		"name":    filter.Name,
		"email":   filter.Email,
		"address": filter.Address,
		"role":    filter.Role,
		"sort_by": filter.SortBy,
	})

	query := r.db.WithContext(ctx).Model(&model.User{})
	query = whereContains(query, "users.name", filter.Name)
	query = whereContains(query, "users.email", filter.Email)
	query = whereContains(query, "users.address", filter.Address)
	if filter.Role != "" {
		query = query.Where("users.role = ?", filter.Role)
	}

	column := resolveSort(userSortColumns, filter.SortBy, "users.created_at")
	order := filter.SortOrder
	if order == "" {
		order = SortDesc
	}

	var users []model.User
	if err := query.Order(column + " " + string(order)).Order("users.id " + string(order)).Find(&users).Error; err != nil {
		logger.Error("Failed to list users", err)
		return nil, err
	}

	logger.Debug("Users listed", map[string]interface{}{
		"count": len(users),
	})
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
