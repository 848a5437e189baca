package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

const maxMoodBoardUploadBytes = 16 << 20

type InspirationHandler struct {
	inspirationService services.InspirationService
}

func NewInspirationHandler(inspirationService services.InspirationService) *InspirationHandler {
	return &InspirationHandler{inspirationService: inspirationService}
}

func (ih *InspirationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	inspirations, err := ih.inspirationService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, inspirations)
}

func (ih *InspirationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		ImageURL string `json:"image_url"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	inspiration, err := ih.inspirationService.Create(c.Request.Context(), userID, services.InspirationCreateInput{
		ImageURL: req.ImageURL,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, inspiration)
}

func (ih *InspirationHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("image file is required"))
		return
	}
	if fileHeader.Size > maxMoodBoardUploadBytes {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("image file too large"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	defer f.Close()
	inspiration, sErr := ih.inspirationService.Upload(
		c.Request.Context(), userID, fileHeader.Filename, f,
		c.PostForm("category"), c.PostForm("note"),
	)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, inspiration)
}

func (ih *InspirationHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	inspirationID, err := uuid.Parse(c.Param("inspirationId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid inspiration id"))
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	inspiration, sErr := ih.inspirationService.Update(c.Request.Context(), userID, inspirationID, updates)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, inspiration)
}

func (ih *InspirationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	inspirationID, err := uuid.Parse(c.Param("inspirationId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid inspiration id"))
		return
	}
	if sErr := ih.inspirationService.Delete(c.Request.Context(), userID, inspirationID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
