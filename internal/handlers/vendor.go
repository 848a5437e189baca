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

type VendorHandler struct {
	vendorService services.VendorService
}

func NewVendorHandler(vendorService services.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

func (vh *VendorHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	vendors, err := vh.vendorService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendors)
}

func (vh *VendorHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Name         string `json:"name"`
		Category     string `json:"category"`
		ContactName  string `json:"contact_name"`
		ContactPhone string `json:"contact_phone"`
		Email        string `json:"email"`
		Website      string `json:"website"`
		Instagram    string `json:"instagram"`
		PriceRange   string `json:"price_range"`
		Status       string `json:"status"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	vendor, err := vh.vendorService.Create(c.Request.Context(), userID, services.VendorCreateInput{
		Name:         req.Name,
		Category:     req.Category,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Email:        req.Email,
		Website:      req.Website,
		Instagram:    req.Instagram,
		PriceRange:   req.PriceRange,
		Status:       types.VendorStatus(req.Status),
		Notes:        req.Notes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, vendor)
}

func (vh *VendorHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid vendor id"))
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	vendor, sErr := vh.vendorService.Update(c.Request.Context(), userID, vendorID, updates)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, vendor)
}

func (vh *VendorHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid vendor id"))
		return
	}
	if sErr := vh.vendorService.Delete(c.Request.Context(), userID, vendorID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
