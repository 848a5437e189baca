package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

type WeddingHandler struct {
	weddingService    services.WeddingService
	invitationService services.InvitationService
}

func NewWeddingHandler(weddingService services.WeddingService, invitationService services.InvitationService) *WeddingHandler {
	return &WeddingHandler{weddingService: weddingService, invitationService: invitationService}
}

func (wh *WeddingHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	wedding, err := wh.weddingService.ResolveForUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, wedding)
}

func (wh *WeddingHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	wedding, err := wh.weddingService.Join(c.Request.Context(), userID, req.Code)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, wedding)
}

func (wh *WeddingHandler) UpdateDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		WeddingDate *time.Time `json:"wedding_date"`
		Venue       *string    `json:"venue"`
		Theme       *string    `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	wedding, err := wh.weddingService.UpdateDetails(c.Request.Context(), userID, services.WeddingDetailsUpdate{
		WeddingDate: req.WeddingDate,
		Venue:       req.Venue,
		Theme:       req.Theme,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, wedding)
}

func (wh *WeddingHandler) InvitePartner(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	if err := wh.invitationService.SendPartnerInvite(c.Request.Context(), userID, req.Email); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
