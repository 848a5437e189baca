package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

const defaultNotificationOrder = "created_at DESC"

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error)
	MarkAllReadByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, notificationIDs []uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	repoLog := baseLog.With("repo", "NotificationRepo")
	return &notificationRepo{db: db, log: repoLog}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notifications) == 0 {
		return []*types.Notification{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Notification
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(defaultNotificationOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *notificationRepo) MarkAllReadByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, notificationIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notificationIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", notificationIDs).
		Delete(&types.Notification{}).Error
}
