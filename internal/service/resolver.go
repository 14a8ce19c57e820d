package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/sirupsen/logrus"
)

// ResolverState is the share acceptance workflow state. The guard against
// concurrent ingests is the state itself, there is no separate flag to
// drift out of sync across exit paths.
type ResolverState int

const (
	StateIdle ResolverState = iota
	StateResolving
	StateAccepting
	StateResolvingOwner
)

func (s ResolverState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateAccepting:
		return "accepting"
	case StateResolvingOwner:
		return "resolving-owner"
	default:
		return "unknown"
	}
}

const (
	defaultPollInterval = 250 * time.Millisecond
	defaultPollAttempts = 8
)

// NewShareResolver creates a new ShareResolver.
func NewShareResolver(store store.Store, cloud cloud.Service, matcher *DocumentMatcher) *ShareResolver {
	return &ShareResolver{
		store:        store,
		cloud:        cloud,
		matcher:      matcher,
		pollInterval: defaultPollInterval,
		pollAttempts: defaultPollAttempts,
	}
}

// ShareResolver owns the one-at-a-time share acceptance workflow:
// resolve an incoming reference to metadata, dedupe against local
// documents, accept the invitation, and wait for the shared record set
// to materialize. Nothing persists across restarts, a crash mid-accept
// leaves no durable lock behind.
type ShareResolver struct {
	mu    sync.Mutex
	state ResolverState

	store   store.Store
	cloud   cloud.Service
	matcher *DocumentMatcher

	pollInterval time.Duration
	pollAttempts int
}

// State returns the current workflow state.
func (r *ShareResolver) State() ResolverState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Ingest processes one share reference and returns the local document id
// the host should navigate to. At most one ingest runs at a time,
// concurrent calls return ErrBusy immediately instead of queueing.
func (r *ShareResolver) Ingest(ctx context.Context, ref cloud.ShareReference) (string, error) {
	if !r.begin() {
		return "", ErrBusy
	}
	defer r.finish()

	meta, err := r.cloud.ResolveMetadata(ctx, ref)
	if err != nil {
		logrus.Errorf("failed to resolve share metadata: %v", err)
		return "", ErrMetadataUnavailable
	}

	// Already accepted, or the owner re-opening their own link. No
	// further replica writes.
	docID, ok, err := r.matcher.FindExisting(ctx, meta)
	if err != nil {
		return "", err
	}
	if ok {
		logrus.Infof("share %s already resolved to document %s", meta.RecordID, docID)
		return docID, nil
	}

	r.setState(StateAccepting)

	err = r.cloud.AcceptInvitation(ctx, meta, store.ReplicaShared)
	switch {
	case errors.Is(err, cloud.ErrOwnerSelfAccept):
		r.setState(StateResolvingOwner)
		return r.resolveOwner(ctx, meta)
	case errors.Is(err, cloud.ErrUnavailable):
		return "", ErrUnavailable
	case err != nil:
		logrus.Errorf("failed to accept share %s: %v", meta.RecordID, err)
		return "", ErrAcceptFailed
	}

	return r.awaitDocument(ctx, meta)
}

// resolveOwner handles the replica service rejecting an accept because
// the invitation targets the caller's own share. The document must be
// among the owner's records, look it up there instead of failing.
func (r *ShareResolver) resolveOwner(ctx context.Context, meta *cloud.ShareMetadata) (string, error) {
	docID, ok, err := r.matcher.FindExisting(ctx, meta)
	if err != nil {
		return "", err
	}
	if ok {
		return docID, nil
	}

	share, err := r.store.GetShareByRecord(ctx, meta.RecordID)
	if err == nil && share != nil {
		return share.DocumentID, nil
	}

	docID, ok, err = r.matcher.MostRecentShared(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		logrus.Warnf("share %s matched by shared-document fallback", meta.RecordID)
		return docID, nil
	}

	return "", ErrAcceptFailed
}

// awaitDocument polls the local store for the accepted document with a
// bounded backoff. The accept is not transactional with the local
// materialization, so a bounded wait is the best available contract.
func (r *ShareResolver) awaitDocument(ctx context.Context, meta *cloud.ShareMetadata) (string, error) {
	interval := r.pollInterval

	for attempt := 0; attempt < r.pollAttempts; attempt++ {
		docID, ok, err := r.matcher.FindExisting(ctx, meta)
		if err != nil {
			return "", err
		}
		if ok {
			return docID, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}

		if interval < 2*time.Second {
			interval *= 2
		}
	}

	// Last resort, mirror the app's historical behavior of settling for
	// the most recently modified shared document.
	docID, ok, err := r.matcher.MostRecentShared(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		logrus.Warnf("accepted share %s resolved by shared-document fallback", meta.RecordID)
		return docID, nil
	}

	return "", ErrAcceptTimeout
}

// begin moves Idle -> Resolving, reporting whether the caller won the
// single-flight race.
func (r *ShareResolver) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return false
	}

	r.state = StateResolving
	return true
}

// finish returns the resolver to Idle on every exit path, no lockout
// when a cloud call fails.
func (r *ShareResolver) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateIdle
}

func (r *ShareResolver) setState(state ResolverState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}
