package controller

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
	"github.com/ikkim/storerate-backend/internal/validation"
)

// normalizer is implemented by requests that clean their fields before
// validation (trimming, lower-casing emails)
type normalizer interface {
	normalize()
}

// bindJSON decodes the body into req, normalises it and validates it.
// On failure the 400 envelope has already been written.
func bindJSON(c *gin.Context, req interface{}, messages map[string]string) bool {
	log := middleware.GetLoggerFromContext(c)

	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		log.Warn("Malformed request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, []string{"Invalid request body"})
		return false
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := validation.ValidateStruct(req); err != nil {
		details := validation.Messages(err, messages)
		log.Warn("Request validation failed", map[string]interface{}{
			"errors": details,
		})
		apperrors.RespondWithValidationError(c, details)
		return false
	}
	return true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	nameMessages = map[string]string{
		"name": "Name must be between 20 and 60 characters",
	}
	emailMessages = map[string]string{
		"email": "Please provide a valid email address",
	}
	passwordMessages = map[string]string{
		"password.strongpassword": "Password must contain at least one uppercase letter and one special character",
		"password":                "Password must be between 8 and 16 characters",
	}
	addressMessages = map[string]string{
		"address.max": "Address must not exceed 400 characters",
		"address":     "Address is required",
	}
)

func mergeMessages(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

type SignupRequest struct {
	Name     string `json:"name" binding:"min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"min=8,max=16,strongpassword"`
	Address  string `json:"address" binding:"required,max=400"`
}

func (r *SignupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Address = strings.TrimSpace(r.Address)
}

var signupMessages = mergeMessages(nameMessages, emailMessages, passwordMessages, addressMessages)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) normalize() {
	r.Email = normalizeEmail(r.Email)
}

var loginMessages = mergeMessages(emailMessages, map[string]string{
	"password": "Password is required",
})

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"min=8,max=16,strongpassword"`
}

var updatePasswordMessages = map[string]string{
	"currentPassword":            "Current password is required",
	"newPassword.strongpassword": "New password must contain at least one uppercase letter and one special character",
	"newPassword":                "New password must be between 8 and 16 characters",
}

type CreateUserRequest struct {
	SignupRequest
	Role string `json:"role" binding:"required,oneof=admin user store_owner"`
}

var createUserMessages = mergeMessages(signupMessages, map[string]string{
	"role": "Role must be one of: admin, user, store_owner",
})

// CreateStoreRequest creates a store with a new owner account, or attaches
// it to an existing store owner when owner_id is given
type CreateStoreRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required,max=400"`
	Password  string `json:"password" binding:"omitempty,min=8,max=16,strongpassword"`
	OwnerName string `json:"owner_name" binding:"omitempty,min=20,max=60"`
	OwnerID   uint   `json:"owner_id" binding:"omitempty,min=1"`
}

func (r *CreateStoreRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.OwnerName = strings.TrimSpace(r.OwnerName)
}

var createStoreMessages = mergeMessages(emailMessages, addressMessages, map[string]string{
	"name.max":                "Store name must not exceed 255 characters",
	"name":                    "Store name is required",
	"password.min":            "Password must be 8-16 characters long",
	"password.max":            "Password must be 8-16 characters long",
	"password.strongpassword": "Password must contain at least one uppercase letter and one special character",
	"owner_name":              "Owner name must be between 20 and 60 characters",
	"owner_id":                "Valid owner ID is required",
})

type RatingRequest struct {
	StoreID uint `json:"store_id" binding:"required,min=1"`
	Rating  int  `json:"rating" binding:"required,min=1,max=5"`
}

var ratingMessages = map[string]string{
	"store_id": "Valid store ID is required",
	"rating":   "Rating must be between 1 and 5",
}
