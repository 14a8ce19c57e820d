package service

import (
	"context"
	"testing"
	"time"

	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/emrgen/mapshare/internal/tester"
	"github.com/stretchr/testify/assert"
)

// fixedShareCloud reports the same share record for every document.
type fixedShareCloud struct {
	cloud.Service
	share *cloud.Share
}

func (f *fixedShareCloud) FetchShare(ctx context.Context, documentID string) (*cloud.Share, error) {
	return f.share, nil
}

func TestDocumentMatcher_FindExisting(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	memory := cloud.NewMemory(store.NewDefaultProvider(gormStore), cloud.Identity{ID: "user-1"})
	matcher := NewDocumentMatcher(gormStore, memory)

	doc := &model.Document{ID: "doc-1"}
	doc.SetName("Summer Trip", time.Now())
	assert.NoError(t, gormStore.CreateDocument(context.TODO(), doc))

	meta := memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	docID, ok, err := matcher.FindExisting(context.TODO(), meta)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "doc-1", docID)

	_, ok, err = matcher.FindExisting(context.TODO(), &cloud.ShareMetadata{RecordID: "share-unknown"})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDocumentMatcher_Ambiguous(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())

	for _, id := range []string{"doc-1", "doc-2"} {
		doc := &model.Document{ID: id}
		doc.SetName(id, time.Now())
		assert.NoError(t, gormStore.CreateDocument(context.TODO(), doc))
	}

	share := &cloud.Share{RecordID: "share-1"}
	matcher := NewDocumentMatcher(gormStore, &fixedShareCloud{share: share})

	_, _, err := matcher.FindExisting(context.TODO(), &cloud.ShareMetadata{RecordID: "share-1"})
	assert.ErrorIs(t, err, ErrDocumentMatchAmbiguous)
}

func TestDocumentMatcher_MostRecentShared(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	memory := cloud.NewMemory(store.NewDefaultProvider(gormStore), cloud.Identity{ID: "user-1"})
	matcher := NewDocumentMatcher(gormStore, memory)

	_, ok, err := matcher.MostRecentShared(context.TODO())
	assert.NoError(t, err)
	assert.False(t, ok)

	private := &model.Document{ID: "doc-private"}
	private.SetName("Drafts", time.Now())
	assert.NoError(t, gormStore.CreateDocument(context.TODO(), private))

	shared := &model.Document{ID: "doc-shared"}
	shared.SetName("Summer Trip", time.Now())
	shared.SetShared(true, time.Now())
	assert.NoError(t, gormStore.CreateDocument(context.TODO(), shared))

	docID, ok, err := matcher.MostRecentShared(context.TODO())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "doc-shared", docID)
}
