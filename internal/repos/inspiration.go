package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultInspirationOrder = "created_at DESC"

type InspirationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, inspirations []*types.Inspiration) ([]*types.Inspiration, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, inspirationIDs []uuid.UUID) ([]*types.Inspiration, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Inspiration, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, inspirationID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, inspirationIDs []uuid.UUID) error
}

type inspirationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspirationRepo(db *gorm.DB, baseLog *logger.Logger) InspirationRepo {
	repoLog := baseLog.With("repo", "InspirationRepo")
	return &inspirationRepo{db: db, log: repoLog}
}

func (r *inspirationRepo) Create(ctx context.Context, tx *gorm.DB, inspirations []*types.Inspiration) ([]*types.Inspiration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(inspirations) == 0 {
		return []*types.Inspiration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&inspirations).Error; err != nil {
		return nil, err
	}
	return inspirations, nil
}

func (r *inspirationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, inspirationIDs []uuid.UUID) ([]*types.Inspiration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Inspiration
	if len(inspirationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", inspirationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *inspirationRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Inspiration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultInspirationOrder
	}

	var results []*types.Inspiration
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *inspirationRepo) UpdateByID(ctx context.Context, tx *gorm.DB, inspirationID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Inspiration{}).
		Where("id = ?", inspirationID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("inspiration %s not found", inspirationID)
	}
	return nil
}

func (r *inspirationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, inspirationIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(inspirationIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", inspirationIDs).
		Delete(&types.Inspiration{}).Error
}
