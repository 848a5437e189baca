package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

// Avatar uploads above this are rejected before any image decoding runs.
const maxAvatarUploadBytes = 8 << 20

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	user, err := uh.userService.UpdateName(c.Request.Context(), userID, req.FullName)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("avatar file is required"))
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("avatar file too large"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, maxAvatarUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	user, sErr := uh.userService.UploadAvatar(c.Request.Context(), userID, raw)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, user)
}
