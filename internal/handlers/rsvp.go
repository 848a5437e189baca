package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

// RSVPHandler serves the public invite surface. No auth runs here: the
// wedding id in the URL is the capability.
type RSVPHandler struct {
	weddingService services.WeddingService
	rsvpService    services.RSVPService
}

func NewRSVPHandler(weddingService services.WeddingService, rsvpService services.RSVPService) *RSVPHandler {
	return &RSVPHandler{weddingService: weddingService, rsvpService: rsvpService}
}

func (rh *RSVPHandler) GetInvite(c *gin.Context) {
	weddingID, err := uuid.Parse(c.Param("weddingId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid wedding id"))
		return
	}
	info, sErr := rh.weddingService.GetPublicInfo(c.Request.Context(), weddingID)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, info)
}

func (rh *RSVPHandler) SubmitRSVP(c *gin.Context) {
	weddingID, err := uuid.Parse(c.Param("weddingId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid wedding id"))
		return
	}
	var req struct {
		Name                string `json:"name"`
		Email               string `json:"email"`
		Phone               string `json:"phone"`
		Pax                 int    `json:"pax"`
		Attending           bool   `json:"attending"`
		DietaryRestrictions string `json:"dietary_restrictions"`
		Message             string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	guest, sErr := rh.rsvpService.Submit(c.Request.Context(), weddingID, services.RSVPInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Pax:                 req.Pax,
		Attending:           req.Attending,
		DietaryRestrictions: req.DietaryRestrictions,
		Message:             req.Message,
	})
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, guest)
}
