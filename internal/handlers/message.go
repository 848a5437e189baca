package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (mh *MessageHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	messages, err := mh.messageService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, messages)
}

func (mh *MessageHandler) Send(c *gin.Context) {
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
	message, err := mh.messageService.Send(c.Request.Context(), userID, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, message)
}
