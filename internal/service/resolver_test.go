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

func setupResolver(identity cloud.Identity) (*ShareResolver, *cloud.Memory, store.Store) {
	tester.RemoveDBFile()
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	memory := cloud.NewMemory(store.NewDefaultProvider(gormStore), identity)
	matcher := NewDocumentMatcher(gormStore, memory)
	resolver := NewShareResolver(gormStore, memory, matcher)
	resolver.pollInterval = time.Millisecond
	resolver.pollAttempts = 4

	return resolver, memory, gormStore
}

func TestShareResolver_Ingest(t *testing.T) {
	resolver, memory, gormStore := setupResolver(cloud.Identity{ID: "user-1", GivenName: "Bob"})

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1", GivenName: "Alice"}, doc)

	docID, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", docID)
	assert.Equal(t, 1, memory.AcceptCalls)
	assert.Equal(t, StateIdle, resolver.State())

	got, err := gormStore.GetDocument(context.TODO(), "doc-1")
	assert.NoError(t, err)
	assert.True(t, got.IsShared)
}

func TestShareResolver_IngestIdempotent(t *testing.T) {
	resolver, memory, _ := setupResolver(cloud.Identity{ID: "user-1"})

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	first, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)

	second, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, memory.AcceptCalls)
}

func TestShareResolver_IngestBusy(t *testing.T) {
	resolver, memory, _ := setupResolver(cloud.Identity{ID: "user-1"})

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	assert.True(t, resolver.begin())

	_, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.ErrorIs(t, err, ErrBusy)

	resolver.finish()

	docID, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", docID)
}

func TestShareResolver_MetadataUnavailable(t *testing.T) {
	resolver, memory, _ := setupResolver(cloud.Identity{ID: "user-1"})

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	memory.FailMetadata = true
	_, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.ErrorIs(t, err, ErrMetadataUnavailable)
	assert.Equal(t, StateIdle, resolver.State())

	// a failed resolve must not leave the workflow locked
	memory.FailMetadata = false
	docID, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", docID)
}

func TestShareResolver_OwnerSelfAccept(t *testing.T) {
	owner := cloud.Identity{ID: "owner-1", GivenName: "Alice"}
	resolver, memory, gormStore := setupResolver(owner)

	doc := &model.Document{ID: "doc-1"}
	doc.SetName("Summer Trip", time.Now())
	doc.SetShared(true, time.Now())
	assert.NoError(t, gormStore.CreateDocument(context.TODO(), doc))

	memory.Host("https://share.test/doc-1", owner, doc)

	// the first dedupe scan misses, forcing an accept the replica
	// service rejects as a self-accept
	memory.FetchShareFailures = 1

	docID, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", docID)
	assert.Equal(t, 1, memory.AcceptCalls)
}

func TestShareResolver_FallbackMostRecentShared(t *testing.T) {
	resolver, memory, gormStore := setupResolver(cloud.Identity{ID: "user-1"})

	shared := &model.Document{ID: "doc-shared"}
	shared.SetName("Road Trip", time.Now())
	shared.SetShared(true, time.Now())
	assert.NoError(t, gormStore.CreateDocument(context.TODO(), shared))

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	// the accepted document materializes long after the poll budget,
	// leaving only the shared-document heuristic
	memory.Latency = time.Hour

	docID, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.NoError(t, err)
	assert.Equal(t, "doc-shared", docID)
}

func TestShareResolver_AcceptTimeout(t *testing.T) {
	resolver, memory, _ := setupResolver(cloud.Identity{ID: "user-1"})

	doc := &model.Document{ID: "doc-1", Name: "Summer Trip"}
	memory.Host("https://share.test/doc-1", cloud.Identity{ID: "owner-1"}, doc)

	memory.Latency = time.Hour

	_, err := resolver.Ingest(context.TODO(), cloud.ShareReference{URL: "https://share.test/doc-1"})
	assert.ErrorIs(t, err, ErrAcceptTimeout)
	assert.Equal(t, StateIdle, resolver.State())
}
