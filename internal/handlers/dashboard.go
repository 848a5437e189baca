package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	summary, err := dh.dashboardService.Summary(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}
