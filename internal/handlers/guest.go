package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type GuestHandler struct {
	guestService services.GuestService
}

func NewGuestHandler(guestService services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

func (gh *GuestHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	guests, err := gh.guestService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, guests)
}

func (gh *GuestHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Name                string `json:"name"`
		Email               string `json:"email"`
		Phone               string `json:"phone"`
		Category            string `json:"category"`
		Pax                 int    `json:"pax"`
		DietaryRestrictions string `json:"dietary_restrictions"`
		PlusOne             bool   `json:"plus_one"`
		Status              string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	guest, err := gh.guestService.Create(c.Request.Context(), userID, services.GuestCreateInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Category:            req.Category,
		Pax:                 req.Pax,
		DietaryRestrictions: req.DietaryRestrictions,
		PlusOne:             req.PlusOne,
		Status:              types.GuestStatus(req.Status),
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, guest)
}

func (gh *GuestHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid guest id"))
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	guest, sErr := gh.guestService.Update(c.Request.Context(), userID, guestID, updates)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, guest)
}

func (gh *GuestHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid guest id"))
		return
	}
	if sErr := gh.guestService.Delete(c.Request.Context(), userID, guestID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
