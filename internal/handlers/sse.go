package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/services"
	"github.com/seabloom/tidewed-backend/internal/sse"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type SSEHandler struct {
	hub            *sse.SSEHub
	weddingService services.WeddingService
}

func NewSSEHandler(hub *sse.SSEHub, weddingService services.WeddingService) *SSEHandler {
	return &SSEHandler{hub: hub, weddingService: weddingService}
}

// Stream opens the event feed for the caller. The client is subscribed to
// every table channel of its resolved wedding plus its own notification
// channel; the connection stays open until the client goes away.
func (sh *SSEHandler) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	wedding, err := sh.weddingService.ResolveForUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	client := sh.hub.NewSSEClient(userID)
	for _, table := range []string{
		types.Wedding{}.TableName(),
		types.Task{}.TableName(),
		types.Guest{}.TableName(),
		types.BudgetItem{}.TableName(),
		types.Vendor{}.TableName(),
		types.Inspiration{}.TableName(),
		types.Message{}.TableName(),
		types.Note{}.TableName(),
	} {
		sh.hub.AddChannel(client, realtime.TableChannel(table, wedding.ID))
	}
	sh.hub.AddChannel(client, realtime.UserChannel(userID))
	defer sh.hub.CloseClient(client)

	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
