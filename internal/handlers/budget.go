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

type BudgetHandler struct {
	budgetService services.BudgetService
}

func NewBudgetHandler(budgetService services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (bh *BudgetHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	items, err := bh.budgetService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, items)
}

func (bh *BudgetHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		ItemName      string     `json:"item_name"`
		Category      string     `json:"category"`
		EstimatedCost float64    `json:"estimated_cost"`
		ActualCost    *float64   `json:"actual_cost"`
		Status        string     `json:"status"`
		Notes         string     `json:"notes"`
		PaidBy        *uuid.UUID `json:"paid_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	item, err := bh.budgetService.Create(c.Request.Context(), userID, services.BudgetItemCreateInput{
		ItemName:      req.ItemName,
		Category:      req.Category,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		Status:        types.BudgetStatus(req.Status),
		Notes:         req.Notes,
		PaidBy:        req.PaidBy,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, item)
}

func (bh *BudgetHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid budget item id"))
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	item, sErr := bh.budgetService.Update(c.Request.Context(), userID, itemID, updates)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, item)
}

func (bh *BudgetHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid budget item id"))
		return
	}
	if sErr := bh.budgetService.Delete(c.Request.Context(), userID, itemID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
