package service

import (
	"context"

	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/sirupsen/logrus"
)

// NewDocumentMatcher creates a new DocumentMatcher.
func NewDocumentMatcher(store store.Store, cloud cloud.Service) *DocumentMatcher {
	return &DocumentMatcher{
		store: store,
		cloud: cloud,
	}
}

// DocumentMatcher matches incoming share metadata to a locally known
// document. Read-only, it never mutates the local store or the replica
// service.
//
// Matching costs one replica round-trip per local document. Acceptable
// because collaborative document counts are small (tens, not thousands).
type DocumentMatcher struct {
	store store.Store
	cloud cloud.Service
}

// FindExisting scans local documents, most recently modified first, and
// compares each document's cloud share record against meta. Returns the
// matching document id, or ok=false when nothing matches. More than one
// match is surfaced as ErrDocumentMatchAmbiguous, never resolved by
// guessing.
func (m *DocumentMatcher) FindExisting(ctx context.Context, meta *cloud.ShareMetadata) (string, bool, error) {
	docs, err := m.store.ListDocuments(ctx)
	if err != nil {
		return "", false, err
	}

	var matches []string
	for _, doc := range docs {
		share, err := m.cloud.FetchShare(ctx, doc.ID)
		if err != nil {
			// A failed per-document lookup is not fatal to the scan.
			logrus.Warnf("share lookup failed for document %s: %v", doc.ID, err)
			continue
		}

		if share != nil && share.RecordID == meta.RecordID {
			matches = append(matches, doc.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0], true, nil
	default:
		return "", false, ErrDocumentMatchAmbiguous
	}
}

// MostRecentShared returns the most recently modified document flagged
// as shared. A heuristic backstop for when the exact match lookup fails
// transiently, not a correctness guarantee.
func (m *DocumentMatcher) MostRecentShared(ctx context.Context) (string, bool, error) {
	docs, err := m.store.ListDocuments(ctx)
	if err != nil {
		return "", false, err
	}

	for _, doc := range docs {
		if doc.IsShared {
			return doc.ID, true, nil
		}
	}

	return "", false, nil
}
