package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

// WeddingService resolves the one wedding a user belongs to and runs the
// partner-binding protocol. Resolution is the only implicit-create path in the
// system: a user with no wedding gets a solo one provisioned on first resolve.
type WeddingService interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID) (*types.Wedding, error)
	Join(ctx context.Context, userID uuid.UUID, code string) (*types.Wedding, error)
	UpdateDetails(ctx context.Context, userID uuid.UUID, updates WeddingDetailsUpdate) (*types.Wedding, error)
	GetPublicInfo(ctx context.Context, weddingID uuid.UUID) (*PublicWeddingInfo, error)
}

// WeddingDetailsUpdate carries the editable wedding fields. Nil pointers mean
// "leave unchanged".
type WeddingDetailsUpdate struct {
	WeddingDate *time.Time
	Venue       *string
	Theme       *string
}

// PublicWeddingInfo is the unauthenticated invite-page payload. It exposes
// only what a guest needs to see; partner ids never leave this service on the
// public path.
type PublicWeddingInfo struct {
	ID          uuid.UUID  `json:"id"`
	WeddingDate *time.Time `json:"wedding_date"`
	Venue       string     `json:"venue"`
}

type weddingService struct {
	db          *gorm.DB
	log         *logger.Logger
	weddingRepo repos.WeddingRepo
	userRepo    repos.UserRepo
	notifier    NotifierService
}

func NewWeddingService(
	db *gorm.DB,
	log *logger.Logger,
	weddingRepo repos.WeddingRepo,
	userRepo repos.UserRepo,
	notifier NotifierService,
) WeddingService {
	serviceLog := log.With("service", "WeddingService")
	return &weddingService{
		db:          db,
		log:         serviceLog,
		weddingRepo: weddingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (ws *weddingService) ResolveForUser(ctx context.Context, userID uuid.UUID) (*types.Wedding, error) {
	weddings, err := ws.weddingRepo.GetByPartnerID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up weddings for user: %w", err)
	}
	switch len(weddings) {
	case 1:
		return weddings[0], nil
	case 0:
		wedding := &types.Wedding{
			ID:           uuid.New(),
			PartnerOneID: userID,
		}
		if _, cErr := ws.weddingRepo.Create(ctx, nil, []*types.Wedding{wedding}); cErr != nil {
			return nil, fmt.Errorf("failed to provision solo wedding: %w", cErr)
		}
		ws.log.Info("Provisioned solo wedding", "wedding_id", wedding.ID, "user_id", userID)
		return wedding, nil
	default:
		// A leftover solo placeholder from a bind whose cleanup delete failed
		// is the one tolerated multi-row shape: the bound wedding wins and the
		// placeholder stays unreachable. No silent repair here.
		var bound []*types.Wedding
		for _, w := range weddings {
			if w.Solo() && w.PartnerOneID == userID {
				continue
			}
			bound = append(bound, w)
		}
		if len(bound) == 1 {
			ws.log.Warn("User still owns a solo placeholder next to a bound wedding",
				"user_id", userID, "wedding_id", bound[0].ID)
			return bound[0], nil
		}
		return nil, apierr.DataIntegrity("user %s is bound to %d weddings", userID, len(weddings))
	}
}

// Join binds userID as partner two of the wedding identified by code. The
// whole operation is retryable: validation re-runs from current state on every
// call, and the claim itself is a single conditional update so a concurrent
// bind against the same wedding loses cleanly instead of corrupting it.
func (ws *weddingService) Join(ctx context.Context, userID uuid.UUID, code string) (*types.Wedding, error) {
	code = normalization.TrimInputString(code)
	if code == "" {
		return nil, apierr.InvalidInput("wedding code is required")
	}
	targetID, pErr := uuid.Parse(code)
	if pErr != nil {
		return nil, apierr.InvalidInput("wedding code is not a valid id")
	}

	own, rErr := ws.ResolveForUser(ctx, userID)
	if rErr != nil {
		return nil, rErr
	}
	if own.ID == targetID {
		return nil, apierr.SelfJoin()
	}

	targets, gErr := ws.weddingRepo.GetByIDs(ctx, nil, []uuid.UUID{targetID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to look up wedding %s: %w", targetID, gErr)
	}
	if len(targets) == 0 {
		return nil, apierr.NotFound("no wedding found for code %s", targetID)
	}
	target := targets[0]
	if !target.Solo() {
		return nil, apierr.AlreadyFull()
	}
	if target.PartnerOneID == userID {
		// Already partner one of the target; nothing to bind.
		return nil, apierr.SelfJoin()
	}

	// Effect phase. The placeholder delete is best effort: an orphaned solo
	// wedding is harmless once the user resolves to the joined one, so a
	// failure here is logged and the bind continues.
	if own.Solo() && own.PartnerOneID == userID {
		if dErr := ws.weddingRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{own.ID}); dErr != nil {
			ws.log.Warn("Failed to delete solo placeholder wedding (continuing)",
				"wedding_id", own.ID, "user_id", userID, "error", dErr)
		}
	}

	claimed, cErr := ws.weddingRepo.ClaimPartnerTwo(ctx, nil, targetID, userID)
	if cErr != nil {
		return nil, apierr.BindTransaction(cErr)
	}
	if !claimed {
		// Lost the race: someone else took the slot between validation and
		// the claim.
		return nil, apierr.AlreadyFull()
	}

	bound, fErr := ws.weddingRepo.GetByIDs(ctx, nil, []uuid.UUID{targetID})
	if fErr != nil || len(bound) == 0 {
		return nil, apierr.BindTransaction(fmt.Errorf("failed to re-fetch wedding after bind: %w", fErr))
	}
	result := bound[0]

	if ws.notifier != nil {
		joinerName := ws.lookupName(ctx, userID)
		if nErr := ws.notifier.NotifyUser(ctx, nil, result.PartnerOneID,
			"Your partner joined",
			fmt.Sprintf("%s joined your wedding plan", joinerName),
			map[string]any{"wedding_id": result.ID.String(), "partner_id": userID.String()},
		); nErr != nil {
			ws.log.Warn("Failed to notify partner one of bind", "error", nErr)
		}
		ws.notifier.PublishTableChange(ctx, types.Wedding{}.TableName(), result.ID, realtime.SSEEventPartnerJoined, result)
	}

	ws.log.Info("Partner bound to wedding", "wedding_id", result.ID, "partner_two_id", userID)
	return result, nil
}

func (ws *weddingService) UpdateDetails(ctx context.Context, userID uuid.UUID, details WeddingDetailsUpdate) (*types.Wedding, error) {
	wedding, rErr := ws.ResolveForUser(ctx, userID)
	if rErr != nil {
		return nil, rErr
	}

	updates := map[string]interface{}{}
	if details.WeddingDate != nil {
		updates["wedding_date"] = *details.WeddingDate
	}
	if details.Venue != nil {
		updates["venue"] = normalization.TrimInputString(*details.Venue)
	}
	if details.Theme != nil {
		updates["theme"] = normalization.TrimInputString(*details.Theme)
	}
	if len(updates) == 0 {
		return wedding, nil
	}

	if uErr := ws.weddingRepo.UpdateByID(ctx, nil, wedding.ID, updates); uErr != nil {
		return nil, fmt.Errorf("failed to update wedding details: %w", uErr)
	}
	refreshed, fErr := ws.weddingRepo.GetByIDs(ctx, nil, []uuid.UUID{wedding.ID})
	if fErr != nil {
		return nil, fmt.Errorf("failed to re-fetch wedding after update: %w", fErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("wedding %s no longer exists", wedding.ID)
	}
	if ws.notifier != nil {
		ws.notifier.PublishTableChange(ctx, types.Wedding{}.TableName(), wedding.ID, realtime.SSEEventWeddingUpdated, refreshed[0])
	}
	return refreshed[0], nil
}

func (ws *weddingService) GetPublicInfo(ctx context.Context, weddingID uuid.UUID) (*PublicWeddingInfo, error) {
	weddings, err := ws.weddingRepo.GetByIDs(ctx, nil, []uuid.UUID{weddingID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up wedding %s: %w", weddingID, err)
	}
	if len(weddings) == 0 {
		return nil, apierr.NotFound("no wedding found for code %s", weddingID)
	}
	w := weddings[0]
	return &PublicWeddingInfo{
		ID:          w.ID,
		WeddingDate: w.WeddingDate,
		Venue:       w.Venue,
	}, nil
}

func (ws *weddingService) lookupName(ctx context.Context, userID uuid.UUID) string {
	users, err := ws.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil || len(users) == 0 {
		return "Your partner"
	}
	name := strings.TrimSpace(users[0].FullName)
	if name == "" {
		return "Your partner"
	}
	return name
}
