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

type VendorCreateInput struct {
	Name         string
	Category     string
	ContactName  string
	ContactPhone string
	Email        string
	Website      string
	Instagram    string
	PriceRange   string
	Status       types.VendorStatus
	Notes        string
}

type VendorService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Vendor, error)
	Create(ctx context.Context, userID uuid.UUID, input VendorCreateInput) (*types.Vendor, error)
	Update(ctx context.Context, userID, vendorID uuid.UUID, updates map[string]interface{}) (*types.Vendor, error)
	Delete(ctx context.Context, userID, vendorID uuid.UUID) error
}

type vendorService struct {
	db             *gorm.DB
	log            *logger.Logger
	vendorRepo     repos.VendorRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewVendorService(
	db *gorm.DB,
	log *logger.Logger,
	vendorRepo repos.VendorRepo,
	weddingService WeddingService,
	notifier NotifierService,
) VendorService {
	serviceLog := log.With("service", "VendorService")
	return &vendorService{
		db:             db,
		log:            serviceLog,
		vendorRepo:     vendorRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (vs *vendorService) List(ctx context.Context, userID uuid.UUID) ([]*types.Vendor, error) {
	wedding, err := vs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	vendors, lErr := vs.vendorRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", lErr)
	}
	return vendors, nil
}

func (vs *vendorService) Create(ctx context.Context, userID uuid.UUID, input VendorCreateInput) (*types.Vendor, error) {
	wedding, err := vs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, apierr.InvalidInput("vendor name is required")
	}
	status := input.Status
	if status == "" {
		status = types.VendorStatusContacted
	}
	vendor := &types.Vendor{
		ID:           uuid.New(),
		WeddingID:    wedding.ID,
		Name:         name,
		Category:     normalization.TrimInputString(input.Category),
		ContactName:  normalization.TrimInputString(input.ContactName),
		ContactPhone: normalization.TrimInputString(input.ContactPhone),
		Email:        normalization.ParseInputString(input.Email),
		Website:      normalization.TrimInputString(input.Website),
		Instagram:    normalization.TrimInputString(input.Instagram),
		PriceRange:   normalization.TrimInputString(input.PriceRange),
		Status:       status,
		IsBooked:     status == types.VendorStatusBooked,
		Notes:        normalization.TrimInputString(input.Notes),
		SavedBy:      userID,
	}
	if _, cErr := vs.vendorRepo.Create(ctx, nil, []*types.Vendor{vendor}); cErr != nil {
		return nil, cErr
	}
	vs.publishChange(ctx, wedding.ID, vendor)
	return vendor, nil
}

func (vs *vendorService) Update(ctx context.Context, userID, vendorID uuid.UUID, updates map[string]interface{}) (*types.Vendor, error) {
	wedding, err := vs.getOwnedWedding(ctx, userID, vendorID)
	if err != nil {
		return nil, err
	}
	// Booking state follows the status column.
	if rawStatus, ok := updates["status"]; ok {
		if statusStr, isStr := rawStatus.(string); isStr {
			updates["is_booked"] = types.VendorStatus(statusStr) == types.VendorStatusBooked
		}
	}
	if uErr := vs.vendorRepo.UpdateByID(ctx, nil, vendorID, updates); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := vs.vendorRepo.GetByIDs(ctx, nil, []uuid.UUID{vendorID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch vendor after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("vendor %s not found", vendorID)
	}
	vs.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (vs *vendorService) Delete(ctx context.Context, userID, vendorID uuid.UUID) error {
	wedding, err := vs.getOwnedWedding(ctx, userID, vendorID)
	if err != nil {
		return err
	}
	if dErr := vs.vendorRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{vendorID}); dErr != nil {
		return fmt.Errorf("failed to delete vendor: %w", dErr)
	}
	vs.publishChange(ctx, wedding.ID, map[string]any{"id": vendorID, "deleted": true})
	return nil
}

func (vs *vendorService) getOwnedWedding(ctx context.Context, userID, vendorID uuid.UUID) (*types.Wedding, error) {
	wedding, err := vs.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	vendors, gErr := vs.vendorRepo.GetByIDs(ctx, nil, []uuid.UUID{vendorID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to look up vendor %s: %w", vendorID, gErr)
	}
	if len(vendors) == 0 || vendors[0].WeddingID != wedding.ID {
		return nil, apierr.NotFound("vendor %s not found", vendorID)
	}
	return wedding, nil
}

func (vs *vendorService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if vs.notifier != nil {
		vs.notifier.PublishTableChange(ctx, types.Vendor{}.TableName(), weddingID, realtime.SSEEventVendorChanged, data)
	}
}
