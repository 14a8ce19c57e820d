package queue

import (
	"context"
	"time"
)

// Op is the kind of mutation a record change carries.
type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
)

// Record kinds carried on the change feed.
const (
	KindDocument = "document"
	KindPlace    = "place"
	KindNote     = "note"
	KindShape    = "shape"
	KindRoute    = "route"
	KindArea     = "area"
)

// RecordChange is one entry of the record change feed: a mutation to a
// document subtree observed on another replica. Payload is the JSON
// encoding of the affected model row for upserts, empty for deletes.
type RecordChange struct {
	Op         Op        `json:"op"`
	Kind       string    `json:"kind"`
	DocumentID string    `json:"document_id"`
	RecordID   string    `json:"record_id"`
	At         time.Time `json:"at"`
	Payload    []byte    `json:"payload,omitempty"`
}

// ChangeQueue transports record changes between replicas.
type ChangeQueue interface {
	// Publish appends a record change to the feed.
	Publish(ctx context.Context, change *RecordChange) error
	// Subscribe returns a channel of incoming record changes. The
	// channel closes when ctx is done or the queue is closed.
	Subscribe(ctx context.Context) (<-chan *RecordChange, error)
	Close() error
}
