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

// maxRSVPPax caps the party size accepted from any guest-facing form.
const maxRSVPPax = 20

const rsvpDefaultCategory = "Friend"

type RSVPInput struct {
	Name                string
	Email               string
	Phone               string
	Pax                 int
	Attending           bool
	DietaryRestrictions string
	Message             string
}

// RSVPService handles the unauthenticated invite surface. Anyone holding a
// wedding id may read the invite info and submit a guest; the id is a shared
// capability, so no membership check runs here. Submitted rows carry a nil
// AddedBy to mark the anonymous origin.
type RSVPService interface {
	Submit(ctx context.Context, weddingID uuid.UUID, input RSVPInput) (*types.Guest, error)
}

type rsvpService struct {
	db          *gorm.DB
	log         *logger.Logger
	guestRepo   repos.GuestRepo
	weddingRepo repos.WeddingRepo
	notifier    NotifierService
}

func NewRSVPService(
	db *gorm.DB,
	log *logger.Logger,
	guestRepo repos.GuestRepo,
	weddingRepo repos.WeddingRepo,
	notifier NotifierService,
) RSVPService {
	serviceLog := log.With("service", "RSVPService")
	return &rsvpService{
		db:          db,
		log:         serviceLog,
		guestRepo:   guestRepo,
		weddingRepo: weddingRepo,
		notifier:    notifier,
	}
}

func (rs *rsvpService) Submit(ctx context.Context, weddingID uuid.UUID, input RSVPInput) (*types.Guest, error) {
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, apierr.InvalidInput("name is required")
	}
	if input.Pax < 1 || input.Pax > maxRSVPPax {
		return nil, apierr.InvalidInput("pax must be between 1 and %d", maxRSVPPax)
	}

	weddings, wErr := rs.weddingRepo.GetByIDs(ctx, nil, []uuid.UUID{weddingID})
	if wErr != nil {
		return nil, fmt.Errorf("failed to look up wedding %s: %w", weddingID, wErr)
	}
	if len(weddings) == 0 {
		return nil, apierr.NotFound("no wedding found for code %s", weddingID)
	}
	wedding := weddings[0]

	status := types.GuestStatusAttending
	if !input.Attending {
		status = types.GuestStatusDeclined
	}
	guest := &types.Guest{
		ID:                  uuid.New(),
		WeddingID:           wedding.ID,
		Name:                name,
		Email:               normalization.ParseInputString(input.Email),
		Phone:               normalization.TrimInputString(input.Phone),
		Category:            rsvpDefaultCategory,
		Pax:                 input.Pax,
		DietaryRestrictions: normalization.TrimInputString(input.DietaryRestrictions),
		Status:              status,
		Message:             normalization.TrimInputString(input.Message),
		AddedBy:             nil,
	}
	if _, cErr := rs.guestRepo.Create(ctx, nil, []*types.Guest{guest}); cErr != nil {
		return nil, cErr
	}

	if rs.notifier != nil {
		rs.notifier.PublishTableChange(ctx, types.Guest{}.TableName(), wedding.ID, realtime.SSEEventGuestChanged, guest)
		verb := "is attending"
		if !input.Attending {
			verb = "declined"
		}
		body := fmt.Sprintf("%s %s (%d guests)", guest.Name, verb, guest.Pax)
		data := map[string]any{"wedding_id": wedding.ID.String(), "guest_id": guest.ID.String()}
		recipients := []uuid.UUID{wedding.PartnerOneID}
		if wedding.PartnerTwoID != nil {
			recipients = append(recipients, *wedding.PartnerTwoID)
		}
		for _, recipient := range recipients {
			if nErr := rs.notifier.NotifyUser(ctx, nil, recipient, "New RSVP", body, data); nErr != nil {
				rs.log.Warn("Failed to notify partner of RSVP", "user_id", recipient, "error", nErr)
			}
		}
	}

	rs.log.Info("RSVP recorded", "wedding_id", wedding.ID, "guest_id", guest.ID, "status", status)
	return guest, nil
}
