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

type BudgetItemCreateInput struct {
	ItemName      string
	Category      string
	EstimatedCost float64
	ActualCost    *float64
	Status        types.BudgetStatus
	Notes         string
	PaidBy        *uuid.UUID
}

type BudgetService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.BudgetItem, error)
	Create(ctx context.Context, userID uuid.UUID, input BudgetItemCreateInput) (*types.BudgetItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, updates map[string]interface{}) (*types.BudgetItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

type budgetService struct {
	db             *gorm.DB
	log            *logger.Logger
	budgetItemRepo repos.BudgetItemRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewBudgetService(
	db *gorm.DB,
	log *logger.Logger,
	budgetItemRepo repos.BudgetItemRepo,
	weddingService WeddingService,
	notifier NotifierService,
) BudgetService {
	serviceLog := log.With("service", "BudgetService")
	return &budgetService{
		db:             db,
		log:            serviceLog,
		budgetItemRepo: budgetItemRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (bs *budgetService) List(ctx context.Context, userID uuid.UUID) ([]*types.BudgetItem, error) {
	wedding, err := bs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, lErr := bs.budgetItemRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", lErr)
	}
	return items, nil
}

func (bs *budgetService) Create(ctx context.Context, userID uuid.UUID, input BudgetItemCreateInput) (*types.BudgetItem, error) {
	wedding, err := bs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	itemName := normalization.TrimInputString(input.ItemName)
	if itemName == "" {
		return nil, apierr.InvalidInput("budget item name is required")
	}
	if input.EstimatedCost < 0 {
		return nil, apierr.InvalidInput("estimated cost cannot be negative")
	}
	status := input.Status
	if status == "" {
		status = types.BudgetStatusPlanned
	}
	item := &types.BudgetItem{
		ID:            uuid.New(),
		WeddingID:     wedding.ID,
		ItemName:      itemName,
		Category:      normalization.TrimInputString(input.Category),
		EstimatedCost: input.EstimatedCost,
		ActualCost:    input.ActualCost,
		Status:        status,
		Notes:         normalization.TrimInputString(input.Notes),
		PaidBy:        input.PaidBy,
		CreatedBy:     userID,
	}
	if _, cErr := bs.budgetItemRepo.Create(ctx, nil, []*types.BudgetItem{item}); cErr != nil {
		return nil, cErr
	}
	bs.publishChange(ctx, wedding.ID, item)
	return item, nil
}

func (bs *budgetService) Update(ctx context.Context, userID, itemID uuid.UUID, updates map[string]interface{}) (*types.BudgetItem, error) {
	wedding, err := bs.getOwnedWedding(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if uErr := bs.budgetItemRepo.UpdateByID(ctx, nil, itemID, updates); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := bs.budgetItemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch budget item after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("budget item %s not found", itemID)
	}
	bs.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (bs *budgetService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	wedding, err := bs.getOwnedWedding(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if dErr := bs.budgetItemRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{itemID}); dErr != nil {
		return fmt.Errorf("failed to delete budget item: %w", dErr)
	}
	bs.publishChange(ctx, wedding.ID, map[string]any{"id": itemID, "deleted": true})
	return nil
}

func (bs *budgetService) getOwnedWedding(ctx context.Context, userID, itemID uuid.UUID) (*types.Wedding, error) {
	wedding, err := bs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, gErr := bs.budgetItemRepo.GetByIDs(ctx, nil, []uuid.UUID{itemID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to look up budget item %s: %w", itemID, gErr)
	}
	if len(items) == 0 || items[0].WeddingID != wedding.ID {
		return nil, apierr.NotFound("budget item %s not found", itemID)
	}
	return wedding, nil
}

func (bs *budgetService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if bs.notifier != nil {
		bs.notifier.PublishTableChange(ctx, types.BudgetItem{}.TableName(), weddingID, realtime.SSEEventBudgetItemChanged, data)
	}
}
