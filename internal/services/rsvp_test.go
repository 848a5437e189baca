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

func newRSVPEnv(t *testing.T) (*gorm.DB, RSVPService, repos.NotificationRepo) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	guestRepo := repos.NewGuestRepo(db, log)
	weddingRepo := repos.NewWeddingRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := NewNotifierService(log, bus.NewLocalBus(log), notificationRepo)
	return db, NewRSVPService(db, log, guestRepo, weddingRepo, notifier), notificationRepo
}

func seedBoundWedding(t *testing.T, db *gorm.DB) (*types.Wedding, *types.User, *types.User) {
	t.Helper()
	partnerOne := seedUser(t, db, "Ana Reyes", "ana@example.com")
	partnerTwo := seedUser(t, db, "Ben Cole", "ben@example.com")
	wedding := &types.Wedding{
		ID:           uuid.New(),
		PartnerOneID: partnerOne.ID,
		PartnerTwoID: &partnerTwo.ID,
	}
	if err := db.Create(wedding).Error; err != nil {
		t.Fatalf("seed wedding failed: %v", err)
	}
	return wedding, partnerOne, partnerTwo
}

func TestRSVPSubmitAttending(t *testing.T) {
	db, svc, notificationRepo := newRSVPEnv(t)
	wedding, partnerOne, partnerTwo := seedBoundWedding(t, db)

	guest, err := svc.Submit(context.Background(), wedding.ID, RSVPInput{
		Name:      "  Dana Flores  ",
		Email:     "Dana@Example.com",
		Pax:       3,
		Attending: true,
		Message:   "Can't wait!",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if guest.Name != "Dana Flores" {
		t.Fatalf("expected trimmed name, got %q", guest.Name)
	}
	if guest.Email != "dana@example.com" {
		t.Fatalf("expected lowercased email, got %q", guest.Email)
	}
	if guest.AddedBy != nil {
		t.Fatal("expected anonymous RSVP to leave added_by nil")
	}
	if guest.Category != "Friend" {
		t.Fatalf("expected default category Friend, got %q", guest.Category)
	}
	if guest.Status != types.GuestStatusAttending {
		t.Fatalf("expected attending status, got %q", guest.Status)
	}

	// Both partners were notified.
	for _, partner := range []uuid.UUID{partnerOne.ID, partnerTwo.ID} {
		notifications, nErr := notificationRepo.ListByUserID(context.Background(), nil, partner)
		if nErr != nil {
			t.Fatalf("list notifications failed: %v", nErr)
		}
		if len(notifications) != 1 {
			t.Fatalf("expected one notification for %s, got %d", partner, len(notifications))
		}
	}
}

func TestRSVPSubmitDeclined(t *testing.T) {
	db, svc, _ := newRSVPEnv(t)
	wedding, _, _ := seedBoundWedding(t, db)

	guest, err := svc.Submit(context.Background(), wedding.ID, RSVPInput{
		Name:      "Eli Park",
		Pax:       1,
		Attending: false,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if guest.Status != types.GuestStatusDeclined {
		t.Fatalf("expected declined status, got %q", guest.Status)
	}
}

func TestRSVPSubmitValidation(t *testing.T) {
	db, svc, _ := newRSVPEnv(t)
	wedding, _, _ := seedBoundWedding(t, db)

	tests := []struct {
		name      string
		weddingID uuid.UUID
		input     RSVPInput
		wantCode  string
	}{
		{"missing name", wedding.ID, RSVPInput{Pax: 1, Attending: true}, apierr.CodeInvalidInput},
		{"zero pax", wedding.ID, RSVPInput{Name: "Eli", Pax: 0, Attending: true}, apierr.CodeInvalidInput},
		{"absurd pax", wedding.ID, RSVPInput{Name: "Eli", Pax: 21, Attending: true}, apierr.CodeInvalidInput},
		{"unknown wedding", uuid.New(), RSVPInput{Name: "Eli", Pax: 1, Attending: true}, apierr.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.weddingID, tt.input)
			if !apierr.Is(err, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}

	var count int64
	if err := db.Model(&types.Guest{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no guests after failed submits, got %d", count)
	}
}
