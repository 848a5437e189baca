package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultBudgetItemOrder = "created_at DESC"

type BudgetItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.BudgetItem) ([]*types.BudgetItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.BudgetItem, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.BudgetItem, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error
}

type budgetItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBudgetItemRepo(db *gorm.DB, baseLog *logger.Logger) BudgetItemRepo {
	repoLog := baseLog.With("repo", "BudgetItemRepo")
	return &budgetItemRepo{db: db, log: repoLog}
}

func (r *budgetItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.BudgetItem) ([]*types.BudgetItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.BudgetItem{}, nil
	}
	for _, it := range items {
		if !it.Status.Valid() {
			return nil, apierr.InvalidInput("unknown budget status %q", it.Status)
		}
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *budgetItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.BudgetItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BudgetItem
	if len(itemIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *budgetItemRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.BudgetItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultBudgetItemOrder
	}

	var results []*types.BudgetItem
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *budgetItemRepo) UpdateByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}
	if raw, ok := updates["status"]; ok {
		status, typed := raw.(types.BudgetStatus)
		if !typed {
			if s, isStr := raw.(string); isStr {
				status = types.BudgetStatus(s)
				updates["status"] = status
			}
		}
		if !status.Valid() {
			return apierr.InvalidInput("unknown budget status %v", raw)
		}
	}

	res := transaction.WithContext(ctx).
		Model(&types.BudgetItem{}).
		Where("id = ?", itemID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("budget item %s not found", itemID)
	}
	return nil
}

func (r *budgetItemRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(itemIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Delete(&types.BudgetItem{}).Error
}
