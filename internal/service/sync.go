package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/queue"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewSyncCoordinator creates a new SyncCoordinator. feed may be nil for
// replicas that do not publish outgoing changes.
func NewSyncCoordinator(store store.Store, cloud cloud.Service, feed queue.ChangeQueue) *SyncCoordinator {
	return &SyncCoordinator{
		store: store,
		cloud: cloud,
		feed:  feed,
	}
}

// SyncCoordinator owns the merge policy for concurrently diverged
// document replicas and the idempotent share attach. Cloud errors are
// classified and returned, never retried here.
type SyncCoordinator struct {
	store store.Store
	cloud cloud.Service
	feed  queue.ChangeQueue
}

// Commit flushes a pending document mutation to the local store. When
// the stored row changed underneath the caller, the document is merged
// field by field: for each field the side with the later write clock
// wins, disjoint concurrent edits both survive.
func (s *SyncCoordinator) Commit(ctx context.Context, doc *model.Document) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		current, err := tx.GetDocument(ctx, doc.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.CreateDocument(ctx, doc)
		}
		if err != nil {
			return err
		}

		mergeDocument(current, doc)
		*doc = *current

		return tx.UpdateDocument(ctx, current)
	})
	if err != nil {
		logrus.Errorf("commit failed for document %s: %v", doc.ID, err)
		return ErrPersistFailed
	}

	s.publish(ctx, queue.KindDocument, doc.ID, doc.ID, doc)

	return nil
}

// Share attaches a cloud share to a document. Idempotent: an already
// attached share is returned as is. The document is marked shared only
// after the replica service confirms the create, never optimistically.
func (s *SyncCoordinator) Share(ctx context.Context, doc *model.Document) (*model.Share, error) {
	existing, err := s.store.GetShareByDocument(ctx, doc.ID)
	if err != nil {
		return nil, ErrPersistFailed
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.cloud.CreateShare(ctx, doc.ID, nil)
	if errors.Is(err, cloud.ErrUnavailable) {
		return nil, ErrUnavailable
	}
	if err != nil {
		logrus.Errorf("failed to create share for document %s: %v", doc.ID, err)
		return nil, ErrUnavailable
	}

	share := &model.Share{
		ID:         uuid.New().String(),
		RecordID:   created.RecordID,
		DocumentID: doc.ID,
		OwnerID:    created.OwnerID,
		Permission: created.Permission,
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateShare(ctx, share); err != nil {
			return err
		}

		doc.SetShared(true, time.Now())
		return tx.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, ErrPersistFailed
	}

	return share, nil
}

// ApplyRemote merges one incoming change-feed entry into the local
// store. Documents go through the field merge, annotations are replaced
// or removed wholesale, the record-level last writer wins.
func (s *SyncCoordinator) ApplyRemote(ctx context.Context, change *queue.RecordChange) error {
	if change.Kind == queue.KindDocument {
		if change.Op == queue.OpDelete {
			if err := s.store.DeleteDocument(ctx, change.RecordID); err != nil {
				return ErrPersistFailed
			}
			return nil
		}

		doc := &model.Document{}
		if err := json.Unmarshal(change.Payload, doc); err != nil {
			return err
		}

		err := s.store.Transaction(ctx, func(tx store.Store) error {
			current, err := tx.GetDocument(ctx, doc.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.CreateDocument(ctx, doc)
			}
			if err != nil {
				return err
			}

			mergeDocument(current, doc)
			return tx.UpdateDocument(ctx, current)
		})
		if err != nil {
			return ErrPersistFailed
		}

		return nil
	}

	if err := s.applyAnnotation(ctx, change); err != nil {
		logrus.Errorf("failed to apply remote %s %s: %v", change.Kind, change.RecordID, err)
		return ErrPersistFailed
	}

	return nil
}

func (s *SyncCoordinator) applyAnnotation(ctx context.Context, change *queue.RecordChange) error {
	switch change.Kind {
	case queue.KindPlace:
		if change.Op == queue.OpDelete {
			return s.store.DeletePlace(ctx, change.RecordID)
		}
		place := &model.Place{}
		if err := json.Unmarshal(change.Payload, place); err != nil {
			return err
		}
		return s.store.SavePlace(ctx, place)
	case queue.KindNote:
		if change.Op == queue.OpDelete {
			return s.store.DeleteNote(ctx, change.RecordID)
		}
		note := &model.Note{}
		if err := json.Unmarshal(change.Payload, note); err != nil {
			return err
		}
		return s.store.SaveNote(ctx, note)
	case queue.KindShape:
		if change.Op == queue.OpDelete {
			return s.store.DeleteShape(ctx, change.RecordID)
		}
		shape := &model.Shape{}
		if err := json.Unmarshal(change.Payload, shape); err != nil {
			return err
		}
		return s.store.SaveShape(ctx, shape)
	case queue.KindRoute:
		if change.Op == queue.OpDelete {
			return s.store.DeleteRoute(ctx, change.RecordID)
		}
		route := &model.Route{}
		if err := json.Unmarshal(change.Payload, route); err != nil {
			return err
		}
		return s.store.SaveRoute(ctx, route)
	case queue.KindArea:
		if change.Op == queue.OpDelete {
			return s.store.DeleteArea(ctx, change.RecordID)
		}
		area := &model.Area{}
		if err := json.Unmarshal(change.Payload, area); err != nil {
			return err
		}
		return s.store.SaveArea(ctx, area)
	}

	logrus.Warnf("ignoring change for unknown record kind %q", change.Kind)
	return nil
}

// publish emits an outgoing change. Best effort, a feed failure never
// fails the local commit.
func (s *SyncCoordinator) publish(ctx context.Context, kind, docID, recordID string, payload interface{}) {
	if s.feed == nil {
		return
	}

	marshal, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("failed to encode change for %s %s: %v", kind, recordID, err)
		return
	}

	err = s.feed.Publish(ctx, &queue.RecordChange{
		Op:         queue.OpUpsert,
		Kind:       kind,
		DocumentID: docID,
		RecordID:   recordID,
		At:         time.Now(),
		Payload:    marshal,
	})
	if err != nil {
		logrus.Warnf("failed to publish change for %s %s: %v", kind, recordID, err)
	}
}

// mergeDocument folds next into current field by field. Each mergeable
// field keeps the value with the later write clock, clock entries merge
// to the pairwise max.
func mergeDocument(current, next *model.Document) {
	if next.FieldTime(model.FieldName).After(current.FieldTime(model.FieldName)) {
		current.Name = next.Name
	}
	if next.FieldTime(model.FieldIsShared).After(current.FieldTime(model.FieldIsShared)) {
		current.IsShared = next.IsShared
	}

	current.TouchField(model.FieldName, next.FieldTime(model.FieldName))
	current.TouchField(model.FieldIsShared, next.FieldTime(model.FieldIsShared))
}
