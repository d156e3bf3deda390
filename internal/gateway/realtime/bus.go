package realtime

import (
	"context"
	"fmt"
	"sync"
)

type Bus interface {
	Publish(ctx context.Context, ev Event) error
	StartForwarder(ctx context.Context, onEvent func(Event)) error
	Close() error
}

// memoryBus delivers synchronously inside the process.
type memoryBus struct {
	mu      sync.RWMutex
	onEvent func(Event)
}

func NewMemoryBus() Bus { return &memoryBus{} }

func (b *memoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	fn := b.onEvent
	b.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
	return nil
}

func (b *memoryBus) StartForwarder(_ context.Context, onEvent func(Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	b.mu.Lock()
	b.onEvent = onEvent
	b.mu.Unlock()
	return nil
}

func (b *memoryBus) Close() error { return nil }
