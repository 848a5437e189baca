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

type GuestCreateInput struct {
	Name                string
	Email               string
	Phone               string
	Category            string
	Pax                 int
	DietaryRestrictions string
	PlusOne             bool
	Status              types.GuestStatus
}

type GuestService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Guest, error)
	Create(ctx context.Context, userID uuid.UUID, input GuestCreateInput) (*types.Guest, error)
	Update(ctx context.Context, userID, guestID uuid.UUID, updates map[string]interface{}) (*types.Guest, error)
	Delete(ctx context.Context, userID, guestID uuid.UUID) error
}

type guestService struct {
	db             *gorm.DB
	log            *logger.Logger
	guestRepo      repos.GuestRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewGuestService(
	db *gorm.DB,
	log *logger.Logger,
	guestRepo repos.GuestRepo,
	weddingService WeddingService,
	notifier NotifierService,
) GuestService {
	serviceLog := log.With("service", "GuestService")
	return &guestService{
		db:             db,
		log:            serviceLog,
		guestRepo:      guestRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (gs *guestService) List(ctx context.Context, userID uuid.UUID) ([]*types.Guest, error) {
	wedding, err := gs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	guests, lErr := gs.guestRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list guests: %w", lErr)
	}
	return guests, nil
}

func (gs *guestService) Create(ctx context.Context, userID uuid.UUID, input GuestCreateInput) (*types.Guest, error) {
	wedding, err := gs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, apierr.InvalidInput("guest name is required")
	}
	pax := input.Pax
	if pax == 0 {
		pax = 1
	}
	if pax < 1 || pax > maxRSVPPax {
		return nil, apierr.InvalidInput("pax must be between 1 and %d", maxRSVPPax)
	}
	status := input.Status
	if status == "" {
		status = types.GuestStatusPending
	}
	addedBy := userID
	guest := &types.Guest{
		ID:                  uuid.New(),
		WeddingID:           wedding.ID,
		Name:                name,
		Email:               normalization.ParseInputString(input.Email),
		Phone:               normalization.TrimInputString(input.Phone),
		Category:            normalization.TrimInputString(input.Category),
		Pax:                 pax,
		DietaryRestrictions: normalization.TrimInputString(input.DietaryRestrictions),
		PlusOne:             input.PlusOne,
		Status:              status,
		AddedBy:             &addedBy,
	}
	if _, cErr := gs.guestRepo.Create(ctx, nil, []*types.Guest{guest}); cErr != nil {
		return nil, cErr
	}
	gs.publishChange(ctx, wedding.ID, guest)
	return guest, nil
}

func (gs *guestService) Update(ctx context.Context, userID, guestID uuid.UUID, updates map[string]interface{}) (*types.Guest, error) {
	wedding, err := gs.getOwnedWedding(ctx, userID, guestID)
	if err != nil {
		return nil, err
	}
	if rawPax, ok := updates["pax"]; ok {
		if pax, isInt := toInt(rawPax); !isInt || pax < 1 || pax > maxRSVPPax {
			return nil, apierr.InvalidInput("pax must be between 1 and %d", maxRSVPPax)
		}
	}
	if uErr := gs.guestRepo.UpdateByID(ctx, nil, guestID, updates); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := gs.guestRepo.GetByIDs(ctx, nil, []uuid.UUID{guestID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch guest after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("guest %s not found", guestID)
	}
	gs.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (gs *guestService) Delete(ctx context.Context, userID, guestID uuid.UUID) error {
	wedding, err := gs.getOwnedWedding(ctx, userID, guestID)
	if err != nil {
		return err
	}
	if dErr := gs.guestRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{guestID}); dErr != nil {
		return fmt.Errorf("failed to delete guest: %w", dErr)
	}
	gs.publishChange(ctx, wedding.ID, map[string]any{"id": guestID, "deleted": true})
	return nil
}

func (gs *guestService) getOwnedWedding(ctx context.Context, userID, guestID uuid.UUID) (*types.Wedding, error) {
	wedding, err := gs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	guests, gErr := gs.guestRepo.GetByIDs(ctx, nil, []uuid.UUID{guestID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to look up guest %s: %w", guestID, gErr)
	}
	if len(guests) == 0 || guests[0].WeddingID != wedding.ID {
		return nil, apierr.NotFound("guest %s not found", guestID)
	}
	return wedding, nil
}

func (gs *guestService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if gs.notifier != nil {
		gs.notifier.PublishTableChange(ctx, types.Guest{}.TableName(), weddingID, realtime.SSEEventGuestChanged, data)
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
