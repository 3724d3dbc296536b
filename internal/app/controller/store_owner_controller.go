package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/internal/app/service"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
)

type StoreOwnerController struct {
	storeService service.StoreService
}

func NewStoreOwnerController(storeService service.StoreService) *StoreOwnerController {
	return &StoreOwnerController{
		storeService: storeService,
	}
}

// Dashboard shows the owner's store aggregate and the ratings behind it
// GET /api/store-owner/dashboard
func (ctrl *StoreOwnerController) Dashboard(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	dashboard, err := ctrl.storeService.OwnerDashboard(c.Request.Context(), ownerID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	apperrors.RespondSuccess(c, http.StatusOK, "", dashboard)
}
