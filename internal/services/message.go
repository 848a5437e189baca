package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

// MessageService is the couple chat: append-only, listed oldest first.
type MessageService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Message, error)
	Send(ctx context.Context, userID uuid.UUID, content string) (*types.Message, error)
}

type messageService struct {
	db             *gorm.DB
	log            *logger.Logger
	messageRepo    repos.MessageRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewMessageService(
	db *gorm.DB,
	log *logger.Logger,
	messageRepo repos.MessageRepo,
	weddingService WeddingService,
	notifier NotifierService,
) MessageService {
	serviceLog := log.With("service", "MessageService")
	return &messageService{
		db:             db,
		log:            serviceLog,
		messageRepo:    messageRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (ms *messageService) List(ctx context.Context, userID uuid.UUID) ([]*types.Message, error) {
	wedding, err := ms.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	messages, lErr := ms.messageRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list messages: %w", lErr)
	}
	return messages, nil
}

func (ms *messageService) Send(ctx context.Context, userID uuid.UUID, content string) (*types.Message, error) {
	wedding, err := ms.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.InvalidInput("message content is required")
	}
	message := &types.Message{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		SenderID:  userID,
		Content:   content,
	}
	if _, cErr := ms.messageRepo.Create(ctx, nil, []*types.Message{message}); cErr != nil {
		return nil, cErr
	}
	if ms.notifier != nil {
		ms.notifier.PublishTableChange(ctx, types.Message{}.TableName(), wedding.ID, realtime.SSEEventMessageCreated, message)
	}
	return message, nil
}
