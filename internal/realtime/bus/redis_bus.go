package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/realtime"
)

// All instances publish and subscribe on this one redis channel; the target
// table or notification channel travels inside the payload and the hub does
// the per-wedding fan-out. Keeping one redis channel avoids a PSUBSCRIBE
// pattern over uuid-suffixed names.
const eventsChannel = "tidewed.events"

const redisDialTimeout = 5 * time.Second

type redisBus struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisBus connects to REDIS_ADDR and verifies the connection before
// returning; callers fall back to the in-process bus on error.
func NewRedisBus(log *logger.Logger) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: redisDialTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log: log.With("service", "RedisEventBus"),
		rdb: rdb,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if msg.Channel == "" {
		return fmt.Errorf("event has no channel")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.rdb.Publish(ctx, eventsChannel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, eventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	go func() {
		for m := range sub.Channel() {
			var msg realtime.SSEMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				b.log.Warn("Dropping undecodable event payload", "error", err)
				continue
			}
			if msg.Channel == "" {
				b.log.Warn("Dropping event with no channel", "event", msg.Event)
				continue
			}
			onMsg(msg)
		}
	}()

	return nil
}

func (b *redisBus) Close() error {
	return b.rdb.Close()
}
