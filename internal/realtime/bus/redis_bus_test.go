package bus

import (
	"testing"

	"github.com/seabloom/tidewed-backend/internal/logger"
)

func TestNewRedisBusRequiresAddr(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init test logger: %v", err)
	}

	t.Setenv("REDIS_ADDR", "")
	if _, err := NewRedisBus(log); err == nil {
		t.Fatal("expected an error without REDIS_ADDR")
	}
}
