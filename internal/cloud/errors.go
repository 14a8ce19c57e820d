package cloud

import "errors"

var (
	// ErrUnavailable is returned when the replica service cannot be
	// reached. Transient, retry policy belongs to the caller.
	ErrUnavailable = errors.New("replica service unavailable")
	// ErrOwnerSelfAccept is returned when the signed-in identity tries
	// to accept an invitation to its own share. Recoverable, the caller
	// should resolve the document through its own records instead.
	ErrOwnerSelfAccept = errors.New("cannot accept own share invitation")
	// ErrMetadataNotFound is returned when a reference does not resolve
	// to a share record.
	ErrMetadataNotFound = errors.New("share metadata not found")
	// ErrIdentityNotFound is returned when an identity record id is
	// unknown to the replica service.
	ErrIdentityNotFound = errors.New("identity not found")
)
