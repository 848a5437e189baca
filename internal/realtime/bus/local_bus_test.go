package bus

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/realtime"
)

func TestLocalBusForwardsPublishedMessages(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init test logger: %v", err)
	}
	b := NewLocalBus(log)
	ctx := context.Background()

	var got []realtime.SSEMessage
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) {
		got = append(got, m)
	}); err != nil {
		t.Fatalf("start forwarder: %v", err)
	}

	msg := realtime.SSEMessage{
		Channel: realtime.TableChannel("tasks", uuid.New()),
		Event:   realtime.SSEEventTaskChanged,
	}
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0].Channel != msg.Channel {
		t.Fatalf("expected one forwarded message, got %+v", got)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("publish after close: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("message delivered after close: %+v", got)
	}
}
