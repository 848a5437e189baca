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

// DashboardSummary aggregates the counters the overview screen shows, so the
// client needs one round trip instead of four lists.
type DashboardSummary struct {
	WeddingID       uuid.UUID `json:"wedding_id"`
	TasksTotal      int       `json:"tasks_total"`
	TasksCompleted  int       `json:"tasks_completed"`
	GuestsTotal     int       `json:"guests_total"`
	GuestsAttending int       `json:"guests_attending"`
	PaxAttending    int       `json:"pax_attending"`
	BudgetEstimated float64   `json:"budget_estimated"`
	BudgetActual    float64   `json:"budget_actual"`
	VendorsBooked   int       `json:"vendors_booked"`
	VendorsTotal    int       `json:"vendors_total"`
}

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error)
}

type dashboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	taskRepo       repos.TaskRepo
	guestRepo      repos.GuestRepo
	budgetItemRepo repos.BudgetItemRepo
	vendorRepo     repos.VendorRepo
	weddingService WeddingService
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	taskRepo repos.TaskRepo,
	guestRepo repos.GuestRepo,
	budgetItemRepo repos.BudgetItemRepo,
	vendorRepo repos.VendorRepo,
	weddingService WeddingService,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:             db,
		log:            serviceLog,
		taskRepo:       taskRepo,
		guestRepo:      guestRepo,
		budgetItemRepo: budgetItemRepo,
		vendorRepo:     vendorRepo,
		weddingService: weddingService,
	}
}

func (ds *dashboardService) Summary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	wedding, err := ds.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &DashboardSummary{WeddingID: wedding.ID}

	tasks, tErr := ds.taskRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if tErr != nil {
		return nil, fmt.Errorf("failed to list tasks for summary: %w", tErr)
	}
	summary.TasksTotal = len(tasks)
	for _, t := range tasks {
		if t.Status == types.TaskStatusCompleted {
			summary.TasksCompleted++
		}
	}

	guests, gErr := ds.guestRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if gErr != nil {
		return nil, fmt.Errorf("failed to list guests for summary: %w", gErr)
	}
	summary.GuestsTotal = len(guests)
	for _, g := range guests {
		if g.Status == types.GuestStatusAttending || g.Status == types.GuestStatusConfirmed {
			summary.GuestsAttending++
			summary.PaxAttending += g.Pax
		}
	}

	items, bErr := ds.budgetItemRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if bErr != nil {
		return nil, fmt.Errorf("failed to list budget items for summary: %w", bErr)
	}
	for _, item := range items {
		summary.BudgetEstimated += item.EstimatedCost
		if item.ActualCost != nil {
			summary.BudgetActual += *item.ActualCost
		}
	}

	vendors, vErr := ds.vendorRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if vErr != nil {
		return nil, fmt.Errorf("failed to list vendors for summary: %w", vErr)
	}
	summary.VendorsTotal = len(vendors)
	for _, v := range vendors {
		if v.IsBooked {
			summary.VendorsBooked++
		}
	}

	return summary, nil
}
