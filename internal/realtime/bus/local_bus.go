package bus

import (
	"context"
	"sync"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/realtime"
)

// localBus delivers messages in-process. Used when REDIS_ADDR is not set;
// fan-out across multiple instances then requires redis.
type localBus struct {
	log *logger.Logger

	mu    sync.RWMutex
	onMsg func(m realtime.SSEMessage)
}

func NewLocalBus(log *logger.Logger) Bus {
	return &localBus{log: log.With("service", "LocalSSEBus")}
}

func (b *localBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	onMsg := b.onMsg
	b.mu.RUnlock()
	if onMsg != nil {
		onMsg(msg)
	}
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	b.mu.Lock()
	b.onMsg = onMsg
	b.mu.Unlock()
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	b.onMsg = nil
	b.mu.Unlock()
	return nil
}
