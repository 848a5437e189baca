package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/realtime/bus"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

func newWeddingEnv(t *testing.T) (*gorm.DB, WeddingService, repos.WeddingRepo, repos.NotificationRepo) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	weddingRepo := repos.NewWeddingRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := NewNotifierService(log, bus.NewLocalBus(log), notificationRepo)
	svc := NewWeddingService(db, log, weddingRepo, userRepo, notifier)
	return db, svc, weddingRepo, notificationRepo
}

func TestResolveForUserProvisionsSoloWedding(t *testing.T) {
	db, svc, _, _ := newWeddingEnv(t)
	user := seedUser(t, db, "Ana Reyes", "ana@example.com")

	wedding, err := svc.ResolveForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if wedding.PartnerOneID != user.ID {
		t.Fatalf("expected user as partner one, got %s", wedding.PartnerOneID)
	}
	if !wedding.Solo() {
		t.Fatal("expected freshly provisioned wedding to be solo")
	}

	again, err := svc.ResolveForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.ID != wedding.ID {
		t.Fatalf("resolve is not idempotent: %s vs %s", again.ID, wedding.ID)
	}

	var count int64
	if err := db.Model(&types.Wedding{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one wedding, got %d", count)
	}
}

func TestResolveForUserDataIntegrity(t *testing.T) {
	db, svc, weddingRepo, _ := newWeddingEnv(t)
	user := seedUser(t, db, "Ana Reyes", "ana@example.com")

	for i := 0; i < 2; i++ {
		if _, err := weddingRepo.Create(context.Background(), nil, []*types.Wedding{{
			ID:           uuid.New(),
			PartnerOneID: user.ID,
		}}); err != nil {
			t.Fatalf("seed wedding failed: %v", err)
		}
	}

	_, err := svc.ResolveForUser(context.Background(), user.ID)
	if !apierr.Is(err, apierr.CodeDataIntegrity) {
		t.Fatalf("expected data_integrity error, got %v", err)
	}
}

func TestJoinBindsPartnerAndDeletesPlaceholder(t *testing.T) {
	db, svc, _, notificationRepo := newWeddingEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")

	weddingA, err := svc.ResolveForUser(context.Background(), userA.ID)
	if err != nil {
		t.Fatalf("resolve A failed: %v", err)
	}
	weddingB, err := svc.ResolveForUser(context.Background(), userB.ID)
	if err != nil {
		t.Fatalf("resolve B failed: %v", err)
	}

	bound, err := svc.Join(context.Background(), userB.ID, weddingA.ID.String())
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if bound.ID != weddingA.ID {
		t.Fatalf("expected bind to target %s, got %s", weddingA.ID, bound.ID)
	}
	if bound.PartnerTwoID == nil || *bound.PartnerTwoID != userB.ID {
		t.Fatal("expected user B as partner two")
	}

	// B's solo placeholder is gone.
	var placeholderCount int64
	if err := db.Model(&types.Wedding{}).Where("id = ?", weddingB.ID).Count(&placeholderCount).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if placeholderCount != 0 {
		t.Fatal("expected solo placeholder wedding to be deleted")
	}

	// B now resolves to A's wedding.
	resolved, err := svc.ResolveForUser(context.Background(), userB.ID)
	if err != nil {
		t.Fatalf("resolve after bind failed: %v", err)
	}
	if resolved.ID != weddingA.ID {
		t.Fatalf("expected B to resolve to bound wedding, got %s", resolved.ID)
	}

	// Partner one got a notification about the bind.
	notifications, err := notificationRepo.ListByUserID(context.Background(), nil, userA.ID)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected one notification for partner one, got %d", len(notifications))
	}
}

func TestJoinValidationOrder(t *testing.T) {
	db, svc, _, _ := newWeddingEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")
	userC := seedUser(t, db, "Caro Diaz", "caro@example.com")

	weddingA, err := svc.ResolveForUser(context.Background(), userA.ID)
	if err != nil {
		t.Fatalf("resolve A failed: %v", err)
	}
	weddingB, err := svc.ResolveForUser(context.Background(), userB.ID)
	if err != nil {
		t.Fatalf("resolve B failed: %v", err)
	}

	tests := []struct {
		name     string
		caller   uuid.UUID
		code     string
		wantCode string
	}{
		{"empty code", userB.ID, "   ", apierr.CodeInvalidInput},
		{"malformed code", userB.ID, "not-a-uuid", apierr.CodeInvalidInput},
		{"self join", userB.ID, weddingB.ID.String(), apierr.CodeSelfJoin},
		{"unknown wedding", userB.ID, uuid.New().String(), apierr.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Join(context.Background(), tt.caller, tt.code)
			if !apierr.Is(err, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}

	// Failed binds leave the target untouched.
	var target types.Wedding
	if err := db.First(&target, "id = ?", weddingA.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if target.PartnerTwoID != nil {
		t.Fatal("expected target wedding unchanged after failed binds")
	}

	// First successful bind takes the slot; the next caller gets already_full.
	if _, err := svc.Join(context.Background(), userB.ID, weddingA.ID.String()); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	_, err = svc.Join(context.Background(), userC.ID, weddingA.ID.String())
	if !apierr.Is(err, apierr.CodeAlreadyFull) {
		t.Fatalf("expected already_full, got %v", err)
	}
}

func TestClaimPartnerTwoLosesRaceCleanly(t *testing.T) {
	db, _, weddingRepo, _ := newWeddingEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")
	userC := seedUser(t, db, "Caro Diaz", "caro@example.com")

	wedding := &types.Wedding{ID: uuid.New(), PartnerOneID: userA.ID}
	if _, err := weddingRepo.Create(context.Background(), nil, []*types.Wedding{wedding}); err != nil {
		t.Fatalf("seed wedding failed: %v", err)
	}

	claimed, err := weddingRepo.ClaimPartnerTwo(context.Background(), nil, wedding.ID, userB.ID)
	if err != nil || !claimed {
		t.Fatalf("expected first claim to succeed, claimed=%v err=%v", claimed, err)
	}
	claimed, err = weddingRepo.ClaimPartnerTwo(context.Background(), nil, wedding.ID, userC.ID)
	if err != nil {
		t.Fatalf("second claim errored: %v", err)
	}
	if claimed {
		t.Fatal("expected second claim to lose the race")
	}

	var reloaded types.Wedding
	if err := db.First(&reloaded, "id = ?", wedding.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.PartnerTwoID == nil || *reloaded.PartnerTwoID != userB.ID {
		t.Fatal("expected partner two to remain the first claimer")
	}
}

func TestUpdateDetails(t *testing.T) {
	db, svc, _, _ := newWeddingEnv(t)
	user := seedUser(t, db, "Ana Reyes", "ana@example.com")

	if _, err := svc.ResolveForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	venue := "  Seabrook Hall  "
	theme := "Coastal"
	updated, err := svc.UpdateDetails(context.Background(), user.ID, WeddingDetailsUpdate{
		Venue: &venue,
		Theme: &theme,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Venue != "Seabrook Hall" {
		t.Fatalf("expected trimmed venue, got %q", updated.Venue)
	}
	if updated.Theme != "Coastal" {
		t.Fatalf("expected theme set, got %q", updated.Theme)
	}
}

func TestResolveForUserPrefersBoundWeddingOverLeakedPlaceholder(t *testing.T) {
	db, svc, weddingRepo, _ := newWeddingEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")

	ctx := context.Background()

	// B is bound to A's wedding, but B's solo placeholder survived the bind's
	// cleanup delete.
	bound := &types.Wedding{
		ID:           uuid.New(),
		PartnerOneID: userA.ID,
		PartnerTwoID: &userB.ID,
	}
	placeholder := &types.Wedding{
		ID:           uuid.New(),
		PartnerOneID: userB.ID,
	}
	if _, err := weddingRepo.Create(ctx, nil, []*types.Wedding{bound, placeholder}); err != nil {
		t.Fatalf("seed weddings failed: %v", err)
	}

	resolved, err := svc.ResolveForUser(ctx, userB.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != bound.ID {
		t.Fatalf("expected the bound wedding, got %s", resolved.ID)
	}
}
