package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/service"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func authPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	}
}

// Login authenticates an account of any role
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	ctrl.login(c)
}

// LoginAs returns a login handler that only admits accounts with role
// POST /api/user/login, /api/store-owner/login, /api/admin/login
func (ctrl *AuthController) LoginAs(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl.login(c, role)
	}
}

func (ctrl *AuthController) login(c *gin.Context, allowed ...model.UserRole) {
	var req LoginRequest
	if !bindJSON(c, &req, loginMessages) {
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password, allowed...)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "Login successful", authPayload(result))
}

// Signup registers a regular user
// POST /api/user/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if !bindJSON(c, &req, signupMessages) {
		return
	}

	result, err := ctrl.authService.Signup(c.Request.Context(), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": result.User.ID,
	})
	apperrors.RespondSuccess(c, http.StatusCreated, "User registered successfully", authPayload(result))
}

// UpdatePassword changes the caller's password after checking the current one
// PUT /api/user/password, /api/store-owner/password
func (ctrl *AuthController) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdatePasswordRequest
	if !bindJSON(c, &req, updatePasswordMessages) {
		return
	}

	if err := ctrl.authService.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "Password updated successfully", nil)
}

// Logout invalidates the token used for this request
// POST /api/user/logout, /api/admin/logout, /api/store-owner/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	token, expiresAt, ok := middleware.GetToken(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token, expiresAt); err != nil {
		middleware.GetLoggerFromContext(c).Error("Logout failed", err)
		apperrors.InternalError(c, "Failed to logout")
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
