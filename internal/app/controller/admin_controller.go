package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
)

type AdminController struct {
	authService   service.AuthService
	adminService  service.AdminService
	storeService  service.StoreService
	reportService service.ReportService
}

func NewAdminController(
	authService service.AuthService,
	adminService service.AdminService,
	storeService service.StoreService,
	reportService service.ReportService,
) *AdminController {
	return &AdminController{
		authService:   authService,
		adminService:  adminService,
		storeService:  storeService,
		reportService: reportService,
	}
}

// DashboardStats returns platform-wide counts
// GET /api/admin/dashboard/stats
func (ctrl *AdminController) DashboardStats(c *gin.Context) {
	stats, err := ctrl.adminService.DashboardStats(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", stats)
}

// CreateUser creates an account of any role
// POST /api/admin/users
func (ctrl *AdminController) CreateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserRequest
	if !bindJSON(c, &req, createUserMessages) {
		return
	}

	role, _ := model.ParseUserRole(req.Role)
	user, err := ctrl.authService.CreateAccount(c.Request.Context(), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     role,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	log.Info("Account created by admin", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	apperrors.RespondSuccess(c, http.StatusCreated, "User created successfully", user)
}

// ListUsers lists accounts with optional filters
// GET /api/admin/users
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy"),
		SortOrder: repository.ParseSortOrder(c.Query("sortOrder")),
	}
	if raw := c.Query("role"); raw != "" {
		role, ok := model.ParseUserRole(raw)
		if !ok {
			apperrors.Respond(c, service.ErrInvalidRole)
			return
		}
		filter.Role = role
	}

	users, err := ctrl.adminService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", users)
}

// GetUser returns one account; store owners include their store
// GET /api/admin/users/:id
func (ctrl *AdminController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	details, err := ctrl.adminService.GetUserDetails(c.Request.Context(), uint(id))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", details)
}

// CreateStore creates a store, either with a new owner account or linked
// to an existing store owner
// POST /api/admin/stores
func (ctrl *AdminController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateStoreRequest
	if !bindJSON(c, &req, createStoreMessages) {
		return
	}

	created, err := ctrl.adminService.CreateStore(c.Request.Context(), service.StoreInput{
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.Address,
		Password:  req.Password,
		OwnerName: req.OwnerName,
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	data := gin.H{
		"store": created.Store,
		"owner": created.Owner,
	}
	message := "Store created successfully"
	if created.OwnerPassword != "" {
		data["credentials"] = gin.H{
			"email":    created.Owner.Email,
			"password": created.OwnerPassword,
		}
		message = "Store and owner account created successfully"
	}

	log.Info("Store created by admin", map[string]interface{}{
		"store_id":  created.Store.ID,
		"owner_id":  created.Owner.ID,
		"new_owner": created.OwnerPassword != "",
	})
	apperrors.RespondSuccess(c, http.StatusCreated, message, data)
}

// ListStores lists stores with their rating aggregate
// GET /api/admin/stores
func (ctrl *AdminController) ListStores(c *gin.Context) {
	stores, err := ctrl.storeService.ListStores(c.Request.Context(), storeFilterFromQuery(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", stores)
}

// ExportStores downloads the stores workbook
// GET /api/admin/stores/export
func (ctrl *AdminController) ExportStores(c *gin.Context) {
	content, filename, err := ctrl.reportService.StoresWorkbook(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, service.XLSXContentType, content)
}

// ArchiveStoresReport uploads the stores workbook to report storage
// POST /api/admin/reports/stores
func (ctrl *AdminController) ArchiveStoresReport(c *gin.Context) {
	object, err := ctrl.reportService.ArchiveStoresReport(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusCreated, "Report archived successfully", object)
}
