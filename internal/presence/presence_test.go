package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryTracker_PublishAndSubscribers(t *testing.T) {
	tracker := NewMemoryTracker(30 * time.Second)

	err := tracker.Publish(context.TODO(), "user-2", "doc-1", nil)
	assert.NoError(t, err)
	err = tracker.Publish(context.TODO(), "user-1", "doc-1", &Location{Latitude: 37.8, Longitude: -122.4})
	assert.NoError(t, err)
	err = tracker.Publish(context.TODO(), "user-3", "doc-2", nil)
	assert.NoError(t, err)

	entries, err := tracker.Subscribers(context.TODO(), "doc-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "user-1", entries[0].ParticipantID)
	assert.Equal(t, "user-2", entries[1].ParticipantID)
	assert.NotNil(t, entries[0].Location)
	assert.Nil(t, entries[1].Location)
}

func TestMemoryTracker_RepublishRefreshes(t *testing.T) {
	tracker := NewMemoryTracker(30 * time.Second)

	now := time.Now()
	tracker.now = func() time.Time { return now }

	assert.NoError(t, tracker.Publish(context.TODO(), "user-1", "doc-1", nil))

	// just shy of expiry, a refresh keeps the entry alive
	now = now.Add(29 * time.Second)
	assert.NoError(t, tracker.Publish(context.TODO(), "user-1", "doc-1", nil))

	now = now.Add(29 * time.Second)
	entries, err := tracker.Subscribers(context.TODO(), "doc-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryTracker_ExpiredEntriesHidden(t *testing.T) {
	tracker := NewMemoryTracker(30 * time.Second)

	now := time.Now()
	tracker.now = func() time.Time { return now }

	assert.NoError(t, tracker.Publish(context.TODO(), "user-1", "doc-1", nil))
	assert.NoError(t, tracker.Publish(context.TODO(), "user-2", "doc-1", nil))

	now = now.Add(31 * time.Second)
	assert.NoError(t, tracker.Publish(context.TODO(), "user-2", "doc-1", nil))

	entries, err := tracker.Subscribers(context.TODO(), "doc-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "user-2", entries[0].ParticipantID)
}

func TestMemoryTracker_Sweep(t *testing.T) {
	tracker := NewMemoryTracker(30 * time.Second)

	now := time.Now()
	tracker.now = func() time.Time { return now }

	assert.NoError(t, tracker.Publish(context.TODO(), "user-1", "doc-1", nil))
	assert.NoError(t, tracker.Publish(context.TODO(), "user-2", "doc-2", nil))

	now = now.Add(31 * time.Second)
	assert.NoError(t, tracker.Publish(context.TODO(), "user-2", "doc-2", nil))

	assert.NoError(t, tracker.Sweep(context.TODO()))

	assert.Len(t, tracker.entries, 1)
	assert.Len(t, tracker.entries["doc-2"], 1)
}

func TestNewMemoryTrackerDefaultTTL(t *testing.T) {
	tracker := NewMemoryTracker(0)
	assert.Equal(t, DefaultTTL, tracker.ttl)
}
