package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
)

// UserController serves the regular user's store browsing and rating
type UserController struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

func NewUserController(storeService service.StoreService, ratingService service.RatingService) *UserController {
	return &UserController{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

func storeFilterFromQuery(c *gin.Context) repository.StoreFilter {
	return repository.StoreFilter{
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy"),
		SortOrder: repository.ParseSortOrder(c.Query("sortOrder")),
	}
}

// ListStores lists stores with their rating and the caller's own rating
// GET /api/user/stores
func (ctrl *UserController) ListStores(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	stores, err := ctrl.storeService.ListForUser(c.Request.Context(), userID, storeFilterFromQuery(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", stores)
}

// SubmitRating records the caller's first rating for a store
// POST /api/user/ratings
func (ctrl *UserController) SubmitRating(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req RatingRequest
	if !bindJSON(c, &req, ratingMessages) {
		return
	}

	rating, err := ctrl.ratingService.Submit(c.Request.Context(), userID, req.StoreID, req.Rating)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusCreated, "Rating submitted successfully", rating)
}

// UpdateRating changes the caller's existing rating for a store
// PUT /api/user/ratings
func (ctrl *UserController) UpdateRating(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req RatingRequest
	if !bindJSON(c, &req, ratingMessages) {
		return
	}

	rating, err := ctrl.ratingService.Update(c.Request.Context(), userID, req.StoreID, req.Rating)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "Rating updated successfully", rating)
}
