package queue

import (
	"context"
	"sync"
)

var _ ChangeQueue = (*MemoryQueue)(nil)

// MemoryQueue is a channel-backed feed for tests and single-process
// runs.
type MemoryQueue struct {
	mu          sync.Mutex
	subscribers []chan *RecordChange
	closed      bool
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (m *MemoryQueue) Publish(ctx context.Context, change *RecordChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	for _, sub := range m.subscribers {
		select {
		case sub <- change:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (m *MemoryQueue) Subscribe(ctx context.Context) (<-chan *RecordChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *RecordChange, 64)
	m.subscribers = append(m.subscribers, ch)

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subscribers {
			if sub == ch {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch, nil
}

func (m *MemoryQueue) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil

	return nil
}
