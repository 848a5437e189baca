package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultVendorOrder = "created_at DESC"

type VendorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vendors []*types.Vendor) ([]*types.Vendor, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, vendorIDs []uuid.UUID) ([]*types.Vendor, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Vendor, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, vendorIDs []uuid.UUID) error
}

type vendorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVendorRepo(db *gorm.DB, baseLog *logger.Logger) VendorRepo {
	repoLog := baseLog.With("repo", "VendorRepo")
	return &vendorRepo{db: db, log: repoLog}
}

func (r *vendorRepo) Create(ctx context.Context, tx *gorm.DB, vendors []*types.Vendor) ([]*types.Vendor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(vendors) == 0 {
		return []*types.Vendor{}, nil
	}
	for _, v := range vendors {
		if !v.Status.Valid() {
			return nil, apierr.InvalidInput("unknown vendor status %q", v.Status)
		}
	}

	if err := transaction.WithContext(ctx).Create(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, vendorIDs []uuid.UUID) ([]*types.Vendor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Vendor
	if len(vendorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", vendorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vendorRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Vendor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultVendorOrder
	}

	var results []*types.Vendor
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vendorRepo) UpdateByID(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}
	if raw, ok := updates["status"]; ok {
		status, typed := raw.(types.VendorStatus)
		if !typed {
			if s, isStr := raw.(string); isStr {
				status = types.VendorStatus(s)
				updates["status"] = status
			}
		}
		if !status.Valid() {
			return apierr.InvalidInput("unknown vendor status %v", raw)
		}
	}

	res := transaction.WithContext(ctx).
		Model(&types.Vendor{}).
		Where("id = ?", vendorID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("vendor %s not found", vendorID)
	}
	return nil
}

func (r *vendorRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, vendorIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(vendorIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", vendorIDs).
		Delete(&types.Vendor{}).Error
}
