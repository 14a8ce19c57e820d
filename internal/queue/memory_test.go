package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryQueue_PublishSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	ch, err := q.Subscribe(context.Background())
	assert.NoError(t, err)

	change := &RecordChange{
		Op:         OpUpsert,
		Kind:       KindPlace,
		DocumentID: "doc-1",
		RecordID:   "place-1",
		At:         time.Now(),
	}
	assert.NoError(t, q.Publish(context.TODO(), change))

	select {
	case got := <-ch:
		assert.Equal(t, "place-1", got.RecordID)
		assert.Equal(t, KindPlace, got.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected a change on the feed")
	}
}

func TestMemoryQueue_FanOut(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	first, err := q.Subscribe(context.Background())
	assert.NoError(t, err)
	second, err := q.Subscribe(context.Background())
	assert.NoError(t, err)

	assert.NoError(t, q.Publish(context.TODO(), &RecordChange{Op: OpDelete, Kind: KindNote, RecordID: "note-1"}))

	for _, ch := range []<-chan *RecordChange{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, OpDelete, got.Op)
		case <-time.After(time.Second):
			t.Fatal("expected a change on every subscriber")
		}
	}
}

func TestMemoryQueue_Unsubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := q.Subscribe(ctx)
	assert.NoError(t, err)

	cancel()

	// the channel closes once the subscription is torn down
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("expected the subscription channel to close")
		}
	}
}

func TestMemoryQueue_Close(t *testing.T) {
	q := NewMemoryQueue()

	ch, err := q.Subscribe(context.Background())
	assert.NoError(t, err)

	assert.NoError(t, q.Close())
	assert.NoError(t, q.Close())

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after close is a no-op
	assert.NoError(t, q.Publish(context.TODO(), &RecordChange{Op: OpUpsert, Kind: KindDocument}))
}
