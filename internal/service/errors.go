package service

import "errors"

var (
	// ErrBusy is returned when an ingest is already in flight. Not an
	// alarming condition, the caller simply lost the single-flight race.
	ErrBusy = errors.New("share ingest already in progress")
	// ErrMetadataUnavailable is returned when a share reference cannot be
	// resolved to share metadata.
	ErrMetadataUnavailable = errors.New("share metadata unavailable")
	// ErrAcceptFailed is returned when the replica service rejects an
	// invitation for a reason other than owner self-accept.
	ErrAcceptFailed = errors.New("share accept failed")
	// ErrAcceptTimeout is returned when an accepted share's document did
	// not materialize locally within the polling window.
	ErrAcceptTimeout = errors.New("timed out waiting for shared document")
	// ErrDocumentMatchAmbiguous is returned when more than one local
	// document claims the same share record.
	ErrDocumentMatchAmbiguous = errors.New("multiple documents match the share")
	// ErrDocumentNotFound is returned when a document id resolves to
	// nothing in the local store.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrPersistFailed is returned on unrecoverable local store errors.
	// Fatal for the affected transaction, already-committed state stays
	// intact.
	ErrPersistFailed = errors.New("failed to persist changes")
	// ErrUnavailable is returned when the replica service is transiently
	// unreachable. Retry policy belongs to the caller.
	ErrUnavailable = errors.New("replica service unavailable")
	// ErrInvalidReactionType is returned for a reaction type outside the
	// supported set.
	ErrInvalidReactionType = errors.New("invalid reaction type")
)
