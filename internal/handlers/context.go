package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/requestdata"
)

// currentUserID pulls the authenticated user out of the request context. The
// auth middleware guarantees it on protected routes; a miss means the route
// was wired without RequireAuth.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}
