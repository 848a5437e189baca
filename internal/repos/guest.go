package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultGuestOrder = "status ASC, name ASC"

type GuestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, guests []*types.Guest) ([]*types.Guest, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, guestIDs []uuid.UUID) ([]*types.Guest, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Guest, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, guestID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, guestIDs []uuid.UUID) error
}

type guestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGuestRepo(db *gorm.DB, baseLog *logger.Logger) GuestRepo {
	repoLog := baseLog.With("repo", "GuestRepo")
	return &guestRepo{db: db, log: repoLog}
}

func (r *guestRepo) Create(ctx context.Context, tx *gorm.DB, guests []*types.Guest) ([]*types.Guest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(guests) == 0 {
		return []*types.Guest{}, nil
	}
	for _, g := range guests {
		if !g.Status.Valid() {
			return nil, apierr.InvalidInput("unknown guest status %q", g.Status)
		}
	}

	if err := transaction.WithContext(ctx).Create(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *guestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, guestIDs []uuid.UUID) ([]*types.Guest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Guest
	if len(guestIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", guestIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *guestRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Guest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultGuestOrder
	}

	var results []*types.Guest
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *guestRepo) UpdateByID(ctx context.Context, tx *gorm.DB, guestID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}
	if raw, ok := updates["status"]; ok {
		status, typed := raw.(types.GuestStatus)
		if !typed {
			if s, isStr := raw.(string); isStr {
				status = types.GuestStatus(s)
				updates["status"] = status
			}
		}
		if !status.Valid() {
			return apierr.InvalidInput("unknown guest status %v", raw)
		}
	}

	res := transaction.WithContext(ctx).
		Model(&types.Guest{}).
		Where("id = ?", guestID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("guest %s not found", guestID)
	}
	return nil
}

func (r *guestRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, guestIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(guestIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", guestIDs).
		Delete(&types.Guest{}).Error
}
