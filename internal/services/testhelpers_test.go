package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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
