package cloud

import (
	"context"
	"sync"
	"time"

	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var _ Service = (*Memory)(nil)

// Memory is an in-process replica service used by tests, the debug
// harness and the CLI's offline mode. Hosted documents materialize into
// the target store on accept, after an optional latency, mimicking the
// asynchronous sync of a real replica service.
type Memory struct {
	mu       sync.Mutex
	provider store.Provider
	identity Identity

	metadata   map[string]*ShareMetadata // by reference URL
	shares     map[string]*Share         // by document ID
	hosted     map[string]*model.Document
	identities map[string]*Identity

	// Fault knobs for tests.
	Unavailable        bool
	FailMetadata       bool
	FetchShareFailures int
	Latency            time.Duration

	AcceptCalls int
}

func NewMemory(provider store.Provider, identity Identity) *Memory {
	return &Memory{
		provider:   provider,
		identity:   identity,
		metadata:   make(map[string]*ShareMetadata),
		shares:     make(map[string]*Share),
		hosted:     make(map[string]*model.Document),
		identities: map[string]*Identity{identity.ID: &identity},
	}
}

// Host registers a remote shared document reachable through url. The
// returned metadata is what ResolveMetadata hands back for that url.
func (m *Memory) Host(url string, owner Identity, doc *model.Document) *ShareMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()

	share := &Share{
		RecordID:   "share-" + uuid.New().String(),
		DocumentID: doc.ID,
		OwnerID:    owner.ID,
		Permission: model.PermissionReadWrite,
	}
	meta := &ShareMetadata{
		RecordID:     share.RecordID,
		DocumentName: doc.Name,
		OwnerID:      owner.ID,
		Permission:   share.Permission,
	}

	m.metadata[url] = meta
	m.shares[doc.ID] = share
	m.hosted[share.RecordID] = doc
	m.identities[owner.ID] = &owner

	return meta
}

// AddIdentity registers a collaborator identity for lookups.
func (m *Memory) AddIdentity(identity Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[identity.ID] = &identity
}

func (m *Memory) ResolveMetadata(ctx context.Context, ref ShareReference) (*ShareMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, ErrUnavailable
	}
	if m.FailMetadata {
		return nil, ErrMetadataNotFound
	}

	if ref.Metadata != nil {
		return ref.Metadata, nil
	}

	meta, ok := m.metadata[ref.URL]
	if !ok {
		return nil, ErrMetadataNotFound
	}

	return meta, nil
}

func (m *Memory) FetchShare(ctx context.Context, documentID string) (*Share, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, ErrUnavailable
	}
	if m.FetchShareFailures > 0 {
		m.FetchShareFailures--
		return nil, ErrUnavailable
	}

	return m.shares[documentID], nil
}

func (m *Memory) CreateShare(ctx context.Context, documentID string, participantIDs []string) (*Share, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, ErrUnavailable
	}

	if share, ok := m.shares[documentID]; ok {
		return share, nil
	}

	share := &Share{
		RecordID:       "share-" + uuid.New().String(),
		DocumentID:     documentID,
		OwnerID:        m.identity.ID,
		Permission:     model.PermissionReadWrite,
		ParticipantIDs: participantIDs,
	}
	m.shares[documentID] = share

	return share, nil
}

func (m *Memory) AcceptInvitation(ctx context.Context, meta *ShareMetadata, target store.Replica) error {
	m.mu.Lock()

	if m.Unavailable {
		m.mu.Unlock()
		return ErrUnavailable
	}

	m.AcceptCalls++

	if meta.OwnerID == m.identity.ID {
		m.mu.Unlock()
		return ErrOwnerSelfAccept
	}

	doc, ok := m.hosted[meta.RecordID]
	if !ok {
		m.mu.Unlock()
		return ErrMetadataNotFound
	}

	latency := m.Latency
	m.mu.Unlock()

	dst, err := m.provider.Provide(target)
	if err != nil {
		return err
	}

	materialize := func() {
		replica := *doc
		replica.SetShared(true, time.Now())
		if err := dst.Transaction(context.Background(), func(tx store.Store) error {
			if _, err := tx.GetDocument(context.Background(), replica.ID); err == nil {
				return tx.UpdateDocument(context.Background(), &replica)
			}
			return tx.CreateDocument(context.Background(), &replica)
		}); err != nil {
			logrus.Errorf("failed to materialize shared document %s: %v", replica.ID, err)
		}
	}

	if latency == 0 {
		materialize()
		return nil
	}

	go func() {
		time.Sleep(latency)
		materialize()
	}()

	return nil
}

func (m *Memory) CurrentIdentity(ctx context.Context) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, ErrUnavailable
	}

	identity := m.identity
	return &identity, nil
}

func (m *Memory) LookupIdentity(ctx context.Context, id string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unavailable {
		return nil, ErrUnavailable
	}

	identity, ok := m.identities[id]
	if !ok {
		return nil, ErrIdentityNotFound
	}

	found := *identity
	return &found, nil
}
