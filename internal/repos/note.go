package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultNoteOrder = "created_at DESC"

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) ([]*types.Note, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Note, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) error
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notes) == 0 {
		return []*types.Note{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Note
	if len(noteIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", noteIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultNoteOrder
	}

	var results []*types.Note
	if err := transaction.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) UpdateByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", noteID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("note %s not found", noteID)
	}
	return nil
}

func (r *noteRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(noteIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", noteIDs).
		Delete(&types.Note{}).Error
}
