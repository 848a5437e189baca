package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

// Chat reads oldest-first so the newest message lands at the bottom.
const defaultMessageOrder = "created_at ASC"

type MessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error)
	ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Message, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, messageIDs []uuid.UUID) error
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	repoLog := baseLog.With("repo", "MessageRepo")
	return &messageRepo{db: db, log: repoLog}
}

func (r *messageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(messages) == 0 {
		return []*types.Message{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) ListByWeddingID(ctx context.Context, tx *gorm.DB, weddingID uuid.UUID, order string) ([]*types.Message, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if order == "" {
		order = defaultMessageOrder
	}

	var results []*types.Message
	if err := transaction.WithContext(ctx).
		Preload("Sender").
		Where("wedding_id = ?", weddingID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *messageRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, messageIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(messageIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", messageIDs).
		Delete(&types.Message{}).Error
}
