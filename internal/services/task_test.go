package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/realtime/bus"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

func newTaskEnv(t *testing.T) (*gorm.DB, TaskService, WeddingService) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	weddingRepo := repos.NewWeddingRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	taskRepo := repos.NewTaskRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := NewNotifierService(log, bus.NewLocalBus(log), notificationRepo)
	weddingService := NewWeddingService(db, log, weddingRepo, userRepo, notifier)
	taskService := NewTaskService(db, log, taskRepo, weddingService, notifier)
	return db, taskService, weddingService
}

func TestTaskLifecycle(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	user := seedUser(t, db, "Ana Reyes", "ana@example.com")
	ctx := context.Background()

	task, err := svc.Create(ctx, user.ID, TaskCreateInput{Title: "  Book venue  ", Category: "Venue"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Title != "Book venue" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != types.TaskStatusPending {
		t.Fatalf("expected default pending status, got %q", task.Status)
	}
	if task.CreatedBy != user.ID {
		t.Fatal("expected created_by set to the caller")
	}

	tasks, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("expected the created task in the list, got %d entries", len(tasks))
	}

	updated, err := svc.Update(ctx, user.ID, task.ID, map[string]interface{}{"status": "completed"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != types.TaskStatusCompleted {
		t.Fatalf("expected completed status, got %q", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("expected completed_at stamped on completion")
	}

	reopened, err := svc.Update(ctx, user.ID, task.ID, map[string]interface{}{"status": "pending"})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatal("expected completed_at cleared on reopen")
	}

	if err := svc.Delete(ctx, user.ID, task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	tasks, err = svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(tasks))
	}
}

func TestTaskScopedToOwnWedding(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")
	ctx := context.Background()

	task, err := svc.Create(ctx, userA.ID, TaskCreateInput{Title: "Book venue"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A stranger's wedding cannot see or touch the task.
	tasks, err := svc.List(ctx, userB.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks for the other wedding, got %d", len(tasks))
	}
	if _, err := svc.Update(ctx, userB.ID, task.ID, map[string]interface{}{"title": "hijacked"}); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found for cross-wedding update, got %v", err)
	}
	if err := svc.Delete(ctx, userB.ID, task.ID); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found for cross-wedding delete, got %v", err)
	}
}

func TestPartnersShareTaskList(t *testing.T) {
	db, svc, weddingService := newTaskEnv(t)
	userA := seedUser(t, db, "Ana Reyes", "ana@example.com")
	userB := seedUser(t, db, "Ben Cole", "ben@example.com")
	ctx := context.Background()

	weddingA, err := weddingService.ResolveForUser(ctx, userA.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, err := weddingService.Join(ctx, userB.ID, weddingA.ID.String()); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if _, err := svc.Create(ctx, userA.ID, TaskCreateInput{Title: "Book venue"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	tasks, err := svc.List(ctx, userB.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected partner to see the shared task, got %d", len(tasks))
	}
}
