package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

// Incomplete-and-soonest first. The completion key is explicit because the
// status strings do not sort that way alphabetically.
const defaultTaskOrder = "CASE status WHEN 'completed' THEN 1 ELSE 0 END, due_date ASC, created_at ASC"

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Task, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}
	for _, t := range tasks {
		if !t.Status.Valid() {
			return nil, apierr.InvalidInput("unknown task status %q", t.Status)
		}
	}

	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Task
	if len(taskIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultTaskOrder
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskRepo) UpdateByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}
	if raw, ok := updates["status"]; ok {
		status, typed := raw.(types.TaskStatus)
		if !typed {
			if s, isStr := raw.(string); isStr {
				status = types.TaskStatus(s)
				updates["status"] = status
			}
		}
		if !status.Valid() {
			return apierr.InvalidInput("unknown task status %v", raw)
		}
	}

	res := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", taskID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("task %s not found", taskID)
	}
	return nil
}

func (r *taskRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(taskIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Delete(&types.Task{}).Error
}
