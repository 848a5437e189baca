package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Wedding{},
		&types.Task{},
		&types.Guest{},
		&types.BudgetItem{},
		&types.Vendor{},
		&types.Inspiration{},
		&types.Message{},
		&types.Note{},
		&types.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init test logger: %v", err)
	}
	return log
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *types.User {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "hashed",
		FullName: name,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedWedding(t *testing.T, db *gorm.DB, partnerOne uuid.UUID) *types.Wedding {
	t.Helper()
	wedding := &types.Wedding{
		ID:           uuid.New(),
		PartnerOneID: partnerOne,
	}
	if err := db.Create(wedding).Error; err != nil {
		t.Fatalf("failed to seed wedding: %v", err)
	}
	return wedding
}

func TestWeddingRepoGetByPartnerID(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewWeddingRepo(db, log)

	one := seedUser(t, db, "Ana", "ana@example.com")
	two := seedUser(t, db, "Ben", "ben@example.com")
	other := seedUser(t, db, "Cara", "cara@example.com")

	wedding := seedWedding(t, db, one.ID)
	if err := db.Model(&types.Wedding{}).Where("id = ?", wedding.ID).
		Update("partner_two_id", two.ID).Error; err != nil {
		t.Fatalf("failed to bind partner two: %v", err)
	}

	for _, userID := range []uuid.UUID{one.ID, two.ID} {
		got, err := repo.GetByPartnerID(ctx, nil, userID)
		if err != nil {
			t.Fatalf("GetByPartnerID(%s): %v", userID, err)
		}
		if len(got) != 1 || got[0].ID != wedding.ID {
			t.Fatalf("expected the shared wedding for %s, got %d rows", userID, len(got))
		}
	}

	got, err := repo.GetByPartnerID(ctx, nil, other.ID)
	if err != nil {
		t.Fatalf("GetByPartnerID(stranger): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no weddings for a stranger, got %d", len(got))
	}
}

func TestGuestRepoRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewGuestRepo(db, log)

	owner := seedUser(t, db, "Ana", "ana@example.com")
	wedding := seedWedding(t, db, owner.ID)

	_, err := repo.Create(ctx, nil, []*types.Guest{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Name:      "Uninvited",
		Pax:       1,
		Status:    types.GuestStatus("ghosting"),
	}})
	if apierr.CodeOf(err) != apierr.CodeInvalidInput {
		t.Fatalf("expected invalid_input on create, got %v", err)
	}

	guests, err := repo.Create(ctx, nil, []*types.Guest{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Name:      "Invited",
		Pax:       1,
		Status:    types.GuestStatusPending,
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = repo.UpdateByID(ctx, nil, guests[0].ID, map[string]interface{}{"status": "ghosting"})
	if apierr.CodeOf(err) != apierr.CodeInvalidInput {
		t.Fatalf("expected invalid_input on update, got %v", err)
	}
}

func TestGuestRepoUpdateAcceptsStringStatus(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewGuestRepo(db, log)

	owner := seedUser(t, db, "Ana", "ana@example.com")
	wedding := seedWedding(t, db, owner.ID)

	guests, err := repo.Create(ctx, nil, []*types.Guest{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Name:      "Dana",
		Pax:       2,
		Status:    types.GuestStatusPending,
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Handler-originated updates carry plain JSON strings, not the typed enum.
	if err := repo.UpdateByID(ctx, nil, guests[0].ID, map[string]interface{}{"status": "confirmed"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByIDs(ctx, nil, []uuid.UUID{guests[0].ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("refetch: %v (%d rows)", err, len(got))
	}
	if got[0].Status != types.GuestStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", got[0].Status)
	}
}

func TestGuestRepoUpdateUnknownIDNotFound(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	repo := NewGuestRepo(db, log)

	err := repo.UpdateByID(context.Background(), nil, uuid.New(), map[string]interface{}{"name": "Nobody"})
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestGuestRepoDefaultOrdering(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewGuestRepo(db, log)

	owner := seedUser(t, db, "Ana", "ana@example.com")
	wedding := seedWedding(t, db, owner.ID)

	seed := []*types.Guest{
		{ID: uuid.New(), WeddingID: wedding.ID, Name: "Zed", Pax: 1, Status: types.GuestStatusAttending},
		{ID: uuid.New(), WeddingID: wedding.ID, Name: "Amy", Pax: 1, Status: types.GuestStatusPending},
		{ID: uuid.New(), WeddingID: wedding.ID, Name: "Bob", Pax: 1, Status: types.GuestStatusAttending},
	}
	if _, err := repo.Create(ctx, nil, seed); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 guests, got %d", len(got))
	}
	wantNames := []string{"Bob", "Zed", "Amy"} // status ASC, then name ASC
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].Name)
		}
	}
}

func TestMessageRepoOrdersBySendTimeAndPreloadsSender(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewMessageRepo(db, log)

	one := seedUser(t, db, "Ana", "ana@example.com")
	two := seedUser(t, db, "Ben", "ben@example.com")
	wedding := seedWedding(t, db, one.ID)

	for _, m := range []struct {
		sender  uuid.UUID
		content string
	}{
		{one.ID, "venue booked!"},
		{two.ID, "amazing, which one?"},
	} {
		if _, err := repo.Create(ctx, nil, []*types.Message{{
			ID:        uuid.New(),
			WeddingID: wedding.ID,
			SenderID:  m.sender,
			Content:   m.content,
		}}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "venue booked!" || got[1].Content != "amazing, which one?" {
		t.Fatalf("messages out of send order: %q then %q", got[0].Content, got[1].Content)
	}
	if got[0].Sender == nil || got[0].Sender.FullName != "Ana" {
		t.Fatalf("expected sender preloaded, got %+v", got[0].Sender)
	}
}

func TestNotificationRepoMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewNotificationRepo(db, log)

	user := seedUser(t, db, "Ana", "ana@example.com")
	other := seedUser(t, db, "Ben", "ben@example.com")

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, nil, []*types.Notification{{
			ID:     uuid.New(),
			UserID: user.ID,
			Title:  fmt.Sprintf("update %d", i),
		}}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, nil, []*types.Notification{{
		ID:     uuid.New(),
		UserID: other.ID,
		Title:  "not yours",
	}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.MarkAllReadByUserID(ctx, nil, user.ID); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	mine, err := repo.ListByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, n := range mine {
		if !n.IsRead {
			t.Fatalf("notification %s still unread", n.ID)
		}
	}

	theirs, err := repo.ListByUserID(ctx, nil, other.ID)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(theirs) != 1 || theirs[0].IsRead {
		t.Fatalf("other user's notifications should be untouched: %+v", theirs)
	}
}

func TestTaskRepoDefaultOrderingListsIncompleteFirst(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewTaskRepo(db, log)

	owner := seedUser(t, db, "Ana", "ana@example.com")
	wedding := seedWedding(t, db, owner.ID)

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(48 * time.Hour)

	// The completed task wins on every other key (earlier due date, earlier
	// created_at, and "completed" < "pending" alphabetically); only the
	// completion key puts the open task first.
	if _, err := repo.Create(ctx, nil, []*types.Task{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Title:     "send invites",
		Status:    types.TaskStatusCompleted,
		DueDate:   &soon,
		CreatedBy: owner.ID,
	}}); err != nil {
		t.Fatalf("create completed: %v", err)
	}
	if _, err := repo.Create(ctx, nil, []*types.Task{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Title:     "book florist",
		Status:    types.TaskStatusPending,
		DueDate:   &later,
		CreatedBy: owner.ID,
	}}); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	got, err := repo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].Title != "book florist" || got[0].Status != types.TaskStatusPending {
		t.Fatalf("expected the open task first, got %q (%s)", got[0].Title, got[0].Status)
	}
}

func TestTaskRepoDeleteThenLookup(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()
	repo := NewTaskRepo(db, log)

	owner := seedUser(t, db, "Ana", "ana@example.com")
	wedding := seedWedding(t, db, owner.ID)

	tasks, err := repo.Create(ctx, nil, []*types.Task{{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		Title:     "book florist",
		Status:    types.TaskStatusPending,
		CreatedBy: owner.ID,
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.FullDeleteByIDs(ctx, nil, []uuid.UUID{tasks[0].ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.GetByIDs(ctx, nil, []uuid.UUID{tasks[0].ID})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected deleted task to be gone, got %d rows", len(got))
	}
}
