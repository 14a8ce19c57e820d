package cloud

import (
	"context"

	"github.com/emrgen/mapshare/internal/store"
)

// ShareReference is an incoming invitation, either a deep-link URL or
// out-of-band metadata handed over by the host platform. Exactly one of
// the fields is set.
type ShareReference struct {
	URL      string
	Metadata *ShareMetadata
}

// ShareMetadata is the canonical description of a cloud share record.
type ShareMetadata struct {
	// RecordID is the cloud identity of the share record, the key used
	// to match an invitation to an already-present local document.
	RecordID     string
	DocumentName string
	OwnerID      string
	Permission   string
}

// Share is the cloud-side access control record bound to a document.
type Share struct {
	RecordID       string
	DocumentID     string
	OwnerID        string
	Permission     string
	ParticipantIDs []string
}

// Identity describes the cloud account a process is signed in as, or a
// collaborator looked up on a share.
type Identity struct {
	ID         string
	GivenName  string
	FamilyName string
	Email      string
	Phone      string
}

// Service is the replica service contract the core depends on. It is an
// already-authenticated boundary, on-wire formats are out of scope.
// Every call is a suspension point, implementations must honor ctx.
type Service interface {
	// ResolveMetadata resolves an incoming reference to canonical share
	// metadata.
	ResolveMetadata(ctx context.Context, ref ShareReference) (*ShareMetadata, error)
	// FetchShare retrieves the share attached to a document, nil when
	// the document is not shared.
	FetchShare(ctx context.Context, documentID string) (*Share, error)
	// CreateShare creates a share record for a document.
	CreateShare(ctx context.Context, documentID string, participantIDs []string) (*Share, error)
	// AcceptInvitation accepts a share invitation into the target
	// replica. The shared record set materializes in the local store
	// asynchronously after a successful accept.
	AcceptInvitation(ctx context.Context, meta *ShareMetadata, target store.Replica) error
	// CurrentIdentity returns the signed-in cloud identity.
	CurrentIdentity(ctx context.Context) (*Identity, error)
	// LookupIdentity resolves a participant identity by its record ID.
	LookupIdentity(ctx context.Context, id string) (*Identity, error)
}
