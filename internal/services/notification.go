package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo) NotificationService {
	serviceLog := log.With("service", "NotificationService")
	return &notificationService{
		db:               db,
		log:              serviceLog,
		notificationRepo: notificationRepo,
	}
}

func (ns *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	notifications, err := ns.notificationRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (ns *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := ns.notificationRepo.MarkAllReadByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
