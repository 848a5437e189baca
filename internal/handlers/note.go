package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (nh *NoteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	notes, err := nh.noteService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notes)
}

func (nh *NoteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	note, err := nh.noteService.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, note)
}

func (nh *NoteHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid note id"))
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	note, sErr := nh.noteService.Update(c.Request.Context(), userID, noteID, req.Content)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, note)
}

func (nh *NoteHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid note id"))
		return
	}
	if sErr := nh.noteService.Delete(c.Request.Context(), userID, noteID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
