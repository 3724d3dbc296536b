package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
	"gorm.io/gorm"
)

// AccountInput describes a new account. Email is normalised by the service.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     model.UserRole
}

// AuthResult is returned by signup and login
type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, input AccountInput) (*AuthResult, error)
	// Login authenticates any role when allowed is empty; otherwise the
	// account's role must be one of allowed.
	Login(ctx context.Context, email, password string, allowed ...model.UserRole) (*AuthResult, error)
	CreateAccount(ctx context.Context, input AccountInput) (*model.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

type authService struct {
	userRepo    repository.UserRepository
	revocations RevocationService
	hasher      *util.PasswordHasher
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	revocations RevocationService,
	hasher *util.PasswordHasher,
	jwtSecret string,
	tokenExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		revocations: revocations,
		hasher:      hasher,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a regular user and logs them in
func (s *authService) Signup(ctx context.Context, input AccountInput) (*AuthResult, error) {
	input.Role = model.RoleUser
	user, err := s.CreateAccount(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) CreateAccount(ctx context.Context, input AccountInput) (*model.User, error) {
	email := normalizeEmail(input.Email)
	logger.Info("Attempting account creation", map[string]interface{}{
		"email": email,
		"role":  input.Role,
	})

	if _, ok := model.ParseUserRole(string(input.Role)); !ok {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Account creation failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, apperrors.Internal("Failed to create user", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Address:      strings.TrimSpace(input.Address),
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("Account created", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string, allowed ...model.UserRole) (*AuthResult, error) {
	email = normalizeEmail(email)
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	if len(allowed) > 0 && !roleIn(user.Role, allowed) {
		logger.Warn("Login failed: role not allowed on this portal", map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})
		return nil, ErrWrongPortal
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return result, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(user.PasswordHash, currentPassword) {
		logger.Warn("Password update failed: current password incorrect", map[string]interface{}{
			"user_id": userID,
		})
		return ErrPasswordIncorrect
	}
	if currentPassword == newPassword {
		return ErrPasswordUnchanged
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Internal("Failed to update password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logger.Info("Password updated", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.revocations.Revoke(ctx, token, expiresAt)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	issued, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperrors.Internal("Failed to generate token", err)
	}
	return &AuthResult{User: user, Token: issued.Token, ExpiresAt: issued.ExpiresAt}, nil
}

func roleIn(role model.UserRole, allowed []model.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
