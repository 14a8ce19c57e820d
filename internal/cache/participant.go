package cache

import (
	"context"
	"sync"

	"github.com/emrgen/mapshare/internal/model"
)

// ParticipantCache caches resolved participant records keyed by cloud
// identity ID.
type ParticipantCache interface {
	// GetParticipant returns a cached participant, nil on a miss.
	GetParticipant(ctx context.Context, id string) (*model.Participant, error)
	// SetParticipant caches a participant.
	SetParticipant(ctx context.Context, participant *model.Participant) error
	// DeleteParticipant drops a participant from the cache.
	DeleteParticipant(ctx context.Context, id string) error
}

var _ ParticipantCache = (*MemoryParticipantCache)(nil)

// MemoryParticipantCache is the single-process cache backing.
type MemoryParticipantCache struct {
	mu           sync.RWMutex
	participants map[string]model.Participant
}

func NewMemoryParticipantCache() *MemoryParticipantCache {
	return &MemoryParticipantCache{
		participants: make(map[string]model.Participant),
	}
}

func (m *MemoryParticipantCache) GetParticipant(ctx context.Context, id string) (*model.Participant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	participant, ok := m.participants[id]
	if !ok {
		return nil, nil
	}

	return &participant, nil
}

func (m *MemoryParticipantCache) SetParticipant(ctx context.Context, participant *model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.participants[participant.ID] = *participant
	return nil
}

func (m *MemoryParticipantCache) DeleteParticipant(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.participants, id)
	return nil
}
