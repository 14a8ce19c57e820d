package presence

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultTTL is how long a presence entry stays visible without a
// refresh. Presence is advisory only, stale entries are excluded lazily
// at read time.
const DefaultTTL = 30 * time.Second

// Location is a map coordinate attached to a presence entry.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Entry is the transient presence record of one participant on one
// document. Entries are never persisted.
type Entry struct {
	ParticipantID string
	DocumentID    string
	Location      *Location
	LastSeen      time.Time
}

// Tracker maintains participant presence per document.
type Tracker interface {
	// Publish upserts a presence entry, refreshing its LastSeen.
	Publish(ctx context.Context, participantID, documentID string, loc *Location) error
	// Subscribers returns a finite snapshot of the live entries for a
	// document. Re-querying reflects the latest published state.
	Subscribers(ctx context.Context, documentID string) ([]Entry, error)
}

// Sweeper is implemented by trackers that support compacting stale
// entries out of their backing store.
type Sweeper interface {
	Sweep(ctx context.Context) error
}

var _ Tracker = (*MemoryTracker)(nil)
var _ Sweeper = (*MemoryTracker)(nil)

// MemoryTracker is the single-process tracker.
type MemoryTracker struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]map[string]Entry // documentID -> participantID -> entry
	now     func() time.Time
}

func NewMemoryTracker(ttl time.Duration) *MemoryTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &MemoryTracker{
		ttl:     ttl,
		entries: make(map[string]map[string]Entry),
		now:     time.Now,
	}
}

func (m *MemoryTracker) Publish(ctx context.Context, participantID, documentID string, loc *Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.entries[documentID]
	if !ok {
		doc = make(map[string]Entry)
		m.entries[documentID] = doc
	}

	doc[participantID] = Entry{
		ParticipantID: participantID,
		DocumentID:    documentID,
		Location:      loc,
		LastSeen:      m.now(),
	}

	return nil
}

func (m *MemoryTracker) Subscribers(ctx context.Context, documentID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := m.now().Add(-m.ttl)
	var live []Entry
	for _, entry := range m.entries[documentID] {
		if entry.LastSeen.Before(cutoff) {
			continue
		}
		live = append(live, entry)
	}

	sort.Slice(live, func(i, j int) bool {
		return live[i].ParticipantID < live[j].ParticipantID
	})

	return live, nil
}

// Sweep drops stale entries from the map. Optional, Subscribers already
// filters them.
func (m *MemoryTracker) Sweep(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for docID, doc := range m.entries {
		for id, entry := range doc {
			if entry.LastSeen.Before(cutoff) {
				delete(doc, id)
			}
		}
		if len(doc) == 0 {
			delete(m.entries, docID)
		}
	}

	return nil
}
