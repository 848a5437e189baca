package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/realtime/bus"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

// NotifierService is the single funnel for change notifications. Row-level
// changes fan out on per-wedding table channels; persistent user notifications
// get a row plus a per-user channel publish. Publishing is best effort: a
// failed publish is logged and never fails the write that triggered it.
type NotifierService interface {
	PublishTableChange(ctx context.Context, table string, weddingID uuid.UUID, event realtime.SSEEvent, data any)
	NotifyUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, title, body string, data map[string]any) error
}

type notifierService struct {
	log              *logger.Logger
	eventBus         bus.Bus
	notificationRepo repos.NotificationRepo
}

func NewNotifierService(log *logger.Logger, eventBus bus.Bus, notificationRepo repos.NotificationRepo) NotifierService {
	return &notifierService{
		log:              log.With("service", "NotifierService"),
		eventBus:         eventBus,
		notificationRepo: notificationRepo,
	}
}

func (ns *notifierService) PublishTableChange(ctx context.Context, table string, weddingID uuid.UUID, event realtime.SSEEvent, data any) {
	if ns.eventBus == nil {
		return
	}
	msg := realtime.SSEMessage{
		Channel: realtime.TableChannel(table, weddingID),
		Event:   event,
		Data:    data,
	}
	if err := ns.eventBus.Publish(ctx, msg); err != nil {
		ns.log.Warn("Failed to publish table change", "channel", msg.Channel, "event", event, "error", err)
	}
}

func (ns *notifierService) NotifyUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, title, body string, data map[string]any) error {
	var payload datatypes.JSON
	if data != nil {
		raw, mErr := json.Marshal(data)
		if mErr != nil {
			return fmt.Errorf("failed to marshal notification data: %w", mErr)
		}
		payload = datatypes.JSON(raw)
	}
	notification := &types.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   payload,
	}
	if _, err := ns.notificationRepo.Create(ctx, tx, []*types.Notification{notification}); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if ns.eventBus != nil {
		msg := realtime.SSEMessage{
			Channel: realtime.UserChannel(userID),
			Event:   realtime.SSEEventNotification,
			Data:    notification,
		}
		if err := ns.eventBus.Publish(ctx, msg); err != nil {
			ns.log.Warn("Failed to publish user notification", "user_id", userID, "error", err)
		}
	}
	return nil
}
