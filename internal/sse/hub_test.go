package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/realtime"
)

func newTestHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init test logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestBroadcastReachesSubscribedClientsOnly(t *testing.T) {
	hub := newTestHub(t)
	weddingID := uuid.New()
	otherWeddingID := uuid.New()

	subscribed := hub.NewSSEClient(uuid.New())
	hub.AddChannel(subscribed, realtime.TableChannel("tasks", weddingID))

	stranger := hub.NewSSEClient(uuid.New())
	hub.AddChannel(stranger, realtime.TableChannel("tasks", otherWeddingID))

	hub.Broadcast(realtime.SSEMessage{
		Channel: realtime.TableChannel("tasks", weddingID),
		Event:   realtime.SSEEventTaskChanged,
	})

	select {
	case msg := <-subscribed.Outbound:
		if msg.Event != realtime.SSEEventTaskChanged {
			t.Fatalf("unexpected event %q", msg.Event)
		}
	default:
		t.Fatal("subscribed client received nothing")
	}

	select {
	case msg := <-stranger.Outbound:
		t.Fatalf("stranger received %+v", msg)
	default:
	}
}

func TestBroadcastAfterRemoveChannel(t *testing.T) {
	hub := newTestHub(t)
	channel := realtime.TableChannel("guests", uuid.New())

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, channel)
	hub.RemoveChannel(client, channel)

	hub.Broadcast(realtime.SSEMessage{Channel: channel, Event: realtime.SSEEventGuestChanged})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("removed client received %+v", msg)
	default:
	}
}

func TestRemoveClientClearsAllSubscriptions(t *testing.T) {
	hub := newTestHub(t)
	weddingID := uuid.New()

	client := hub.NewSSEClient(uuid.New())
	channels := []string{
		realtime.TableChannel("tasks", weddingID),
		realtime.TableChannel("guests", weddingID),
		realtime.UserChannel(client.UserID),
	}
	for _, ch := range channels {
		hub.AddChannel(client, ch)
	}

	hub.RemoveClient(client)

	for _, ch := range channels {
		hub.Broadcast(realtime.SSEMessage{Channel: ch, Event: realtime.SSEEventNotification})
	}
	select {
	case msg := <-client.Outbound:
		t.Fatalf("removed client received %+v", msg)
	default:
	}
	if len(client.Channels) != 0 {
		t.Fatalf("client still tracks %d channels", len(client.Channels))
	}
}

func TestBroadcastDropsWhenOutboundFull(t *testing.T) {
	hub := newTestHub(t)
	channel := realtime.TableChannel("messages", uuid.New())

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, channel)

	// Outbound is buffered; a stalled reader must not block the hub.
	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(realtime.SSEMessage{Channel: channel, Event: realtime.SSEEventMessageCreated})
	}

	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("expected a full buffer of %d, got %d", cap(client.Outbound), got)
	}
}

func TestCloseClientTearsDownStream(t *testing.T) {
	hub := newTestHub(t)
	channel := realtime.TableChannel("tasks", uuid.New())

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, channel)

	hub.CloseClient(client)

	// The client is gone from the hub: broadcasting must not panic on the
	// closed outbound channel.
	hub.Broadcast(realtime.SSEMessage{Channel: channel, Event: realtime.SSEEventTaskChanged})

	select {
	case <-client.done:
	default:
		t.Fatal("expected done to be closed")
	}
	if _, open := <-client.Outbound; open {
		t.Fatal("expected outbound to be closed and drained")
	}
	if len(client.Channels) != 0 {
		t.Fatalf("client still tracks %d channels", len(client.Channels))
	}
}
