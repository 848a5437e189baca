package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/services"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (th *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	tasks, err := th.taskService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (th *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Category    string     `json:"category"`
		Status      string     `json:"status"`
		DueDate     *time.Time `json:"due_date"`
		AssignedTo  *uuid.UUID `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	task, err := th.taskService.Create(c.Request.Context(), userID, services.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      types.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

func (th *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid task id"))
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	task, sErr := th.taskService.Update(c.Request.Context(), userID, taskID, updates)
	if sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, task)
}

func (th *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("not authenticated"))
		return
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid task id"))
		return
	}
	if sErr := th.taskService.Delete(c.Request.Context(), userID, taskID); sErr != nil {
		RespondServiceError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
