package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type WeddingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, weddings []*types.Wedding) ([]*types.Wedding, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, weddingIDs []uuid.UUID) ([]*types.Wedding, error)
	// GetByPartnerID runs the or-filter lookup: weddings where the user is
	// partner one or partner two. The caller decides what more than one row
	// means (it is an integrity violation for the resolver).
	GetByPartnerID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Wedding, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, updates map[string]interface{}) error
	// ClaimPartnerTwo performs the bind's conditional update: the partner-two
	// slot is written only while it is still vacant, in a single statement, so
	// two concurrent binds cannot both succeed. Returns false when the slot
	// was already taken.
	ClaimPartnerTwo(ctx context.Context, tx *gorm.DB, weddingID, userID uuid.UUID) (bool, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, weddingIDs []uuid.UUID) error
}

type weddingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeddingRepo(db *gorm.DB, baseLog *logger.Logger) WeddingRepo {
	repoLog := baseLog.With("repo", "WeddingRepo")
	return &weddingRepo{db: db, log: repoLog}
}

func (r *weddingRepo) Create(ctx context.Context, tx *gorm.DB, weddings []*types.Wedding) ([]*types.Wedding, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(weddings) == 0 {
		return []*types.Wedding{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&weddings).Error; err != nil {
		return nil, err
	}
	return weddings, nil
}

func (r *weddingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, weddingIDs []uuid.UUID) ([]*types.Wedding, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Wedding
	if len(weddingIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", weddingIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *weddingRepo) GetByPartnerID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Wedding, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Wedding
	if err := transaction.WithContext(ctx).
		Where("partner_one_id = ? OR partner_two_id = ?", userID, userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *weddingRepo) UpdateByID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Wedding{}).
		Where("id = ?", weddingID).
		Updates(updates).Error
}

func (r *weddingRepo) ClaimPartnerTwo(ctx context.Context, tx *gorm.DB, weddingID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Wedding{}).
		Where("id = ? AND partner_two_id IS NULL", weddingID).
		Update("partner_two_id", userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *weddingRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, weddingIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(weddingIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", weddingIDs).
		Delete(&types.Wedding{}).Error
}
