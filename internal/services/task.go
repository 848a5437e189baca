package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type TaskCreateInput struct {
	Title       string
	Description string
	Category    string
	Status      types.TaskStatus
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

type TaskService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Task, error)
	Create(ctx context.Context, userID uuid.UUID, input TaskCreateInput) (*types.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, updates map[string]interface{}) (*types.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	db             *gorm.DB
	log            *logger.Logger
	taskRepo       repos.TaskRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewTaskService(
	db *gorm.DB,
	log *logger.Logger,
	taskRepo repos.TaskRepo,
	weddingService WeddingService,
	notifier NotifierService,
) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{
		db:             db,
		log:            serviceLog,
		taskRepo:       taskRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (ts *taskService) List(ctx context.Context, userID uuid.UUID) ([]*types.Task, error) {
	wedding, err := ts.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, lErr := ts.taskRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", lErr)
	}
	return tasks, nil
}

func (ts *taskService) Create(ctx context.Context, userID uuid.UUID, input TaskCreateInput) (*types.Task, error) {
	wedding, err := ts.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	title := normalization.TrimInputString(input.Title)
	if title == "" {
		return nil, apierr.InvalidInput("task title is required")
	}
	status := input.Status
	if status == "" {
		status = types.TaskStatusPending
	}
	task := &types.Task{
		ID:          uuid.New(),
		WeddingID:   wedding.ID,
		Title:       title,
		Description: normalization.TrimInputString(input.Description),
		Category:    normalization.TrimInputString(input.Category),
		Status:      status,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   userID,
	}
	if task.Status == types.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	if _, cErr := ts.taskRepo.Create(ctx, nil, []*types.Task{task}); cErr != nil {
		return nil, cErr
	}
	ts.publishChange(ctx, wedding.ID, task)
	return task, nil
}

func (ts *taskService) Update(ctx context.Context, userID, taskID uuid.UUID, updates map[string]interface{}) (*types.Task, error) {
	wedding, task, err := ts.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	// Completing a task stamps completed_at; reopening clears it.
	if rawStatus, ok := updates["status"]; ok {
		if statusStr, isStr := rawStatus.(string); isStr {
			switch types.TaskStatus(statusStr) {
			case types.TaskStatusCompleted:
				if task.CompletedAt == nil {
					updates["completed_at"] = time.Now()
				}
			case types.TaskStatusPending:
				updates["completed_at"] = nil
			}
		}
	}
	if uErr := ts.taskRepo.UpdateByID(ctx, nil, taskID, updates); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := ts.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch task after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("task %s not found", taskID)
	}
	ts.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (ts *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	wedding, _, err := ts.getOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if dErr := ts.taskRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{taskID}); dErr != nil {
		return fmt.Errorf("failed to delete task: %w", dErr)
	}
	ts.publishChange(ctx, wedding.ID, map[string]any{"id": taskID, "deleted": true})
	return nil
}

// getOwned loads the task and verifies it belongs to the caller's wedding. A
// task under someone else's wedding is indistinguishable from a missing one.
func (ts *taskService) getOwned(ctx context.Context, userID, taskID uuid.UUID) (*types.Wedding, *types.Task, error) {
	wedding, err := ts.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	tasks, gErr := ts.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if gErr != nil {
		return nil, nil, fmt.Errorf("failed to look up task %s: %w", taskID, gErr)
	}
	if len(tasks) == 0 || tasks[0].WeddingID != wedding.ID {
		return nil, nil, apierr.NotFound("task %s not found", taskID)
	}
	return wedding, tasks[0], nil
}

func (ts *taskService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if ts.notifier != nil {
		ts.notifier.PublishTableChange(ctx, types.Task{}.TableName(), weddingID, realtime.SSEEventTaskChanged, data)
	}
}
