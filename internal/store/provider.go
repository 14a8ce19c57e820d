package store

import "errors"

var ErrStoreNotFound = errors.New("store not found")

// Replica names a document replica backing. The owner's documents live in
// the private replica, documents materialized from accepted invitations
// live in the shared replica.
type Replica string

const (
	ReplicaPrivate Replica = "private"
	ReplicaShared  Replica = "shared"
)

type Provider interface {
	Provide(replica Replica) (Store, error)
}

// ReplicaProvider maps each replica to its own store.
type ReplicaProvider struct {
	stores map[Replica]Store
}

func NewReplicaProvider(private, shared Store) *ReplicaProvider {
	return &ReplicaProvider{
		stores: map[Replica]Store{
			ReplicaPrivate: private,
			ReplicaShared:  shared,
		},
	}
}

func (p *ReplicaProvider) Provide(replica Replica) (Store, error) {
	if store, ok := p.stores[replica]; ok {
		return store, nil
	}

	return nil, ErrStoreNotFound
}

// DefaultProvider serves every replica from a single store, the common
// single-database deployment.
type DefaultProvider struct {
	store Store
}

func NewDefaultProvider(store Store) *DefaultProvider {
	return &DefaultProvider{store: store}
}

func (p *DefaultProvider) Provide(replica Replica) (Store, error) {
	return p.store, nil
}
