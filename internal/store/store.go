package store

import (
	"context"

	"github.com/emrgen/mapshare/internal/model"
)

type Store interface {
	DocumentStore
	AnnotationStore
	ParticipantStore
	ShareStore
	SocialStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type DocumentStore interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	// ListDocuments retrieves all documents, most recently modified first.
	ListDocuments(ctx context.Context) ([]*model.Document, error)
	// UpdateDocument updates a document.
	UpdateDocument(ctx context.Context, doc *model.Document) error
	// DeleteDocument deletes a document and its owned annotations.
	DeleteDocument(ctx context.Context, id string) error
}

type AnnotationStore interface {
	// SavePlace creates or replaces a place.
	SavePlace(ctx context.Context, place *model.Place) error
	// ListPlaces retrieves the places of a document.
	ListPlaces(ctx context.Context, docID string) ([]*model.Place, error)
	// GetPlace retrieves a place by ID.
	GetPlace(ctx context.Context, id string) (*model.Place, error)
	// DeletePlace deletes a place by ID.
	DeletePlace(ctx context.Context, id string) error
	// SaveNote creates or replaces a note.
	SaveNote(ctx context.Context, note *model.Note) error
	// ListNotes retrieves the notes of a document.
	ListNotes(ctx context.Context, docID string) ([]*model.Note, error)
	// DeleteNote deletes a note by ID.
	DeleteNote(ctx context.Context, id string) error
	// SaveShape creates or replaces a shape.
	SaveShape(ctx context.Context, shape *model.Shape) error
	// ListShapes retrieves the shapes of a document.
	ListShapes(ctx context.Context, docID string) ([]*model.Shape, error)
	// DeleteShape deletes a shape by ID.
	DeleteShape(ctx context.Context, id string) error
	// SaveRoute creates or replaces a route.
	SaveRoute(ctx context.Context, route *model.Route) error
	// ListRoutes retrieves the routes of a document.
	ListRoutes(ctx context.Context, docID string) ([]*model.Route, error)
	// DeleteRoute deletes a route by ID.
	DeleteRoute(ctx context.Context, id string) error
	// SaveArea creates or replaces an area.
	SaveArea(ctx context.Context, area *model.Area) error
	// ListAreas retrieves the areas of a document.
	ListAreas(ctx context.Context, docID string) ([]*model.Area, error)
	// DeleteArea deletes an area by ID.
	DeleteArea(ctx context.Context, id string) error
}

type ParticipantStore interface {
	// GetParticipant retrieves a participant by cloud identity ID.
	GetParticipant(ctx context.Context, id string) (*model.Participant, error)
	// FindOrCreateParticipant upserts a participant keyed on the cloud
	// identity ID, updating only the known fields of an existing row.
	FindOrCreateParticipant(ctx context.Context, participant *model.Participant) (*model.Participant, error)
}

type ShareStore interface {
	// CreateShare creates the local mirror of a cloud share record.
	CreateShare(ctx context.Context, share *model.Share) error
	// GetShareByDocument retrieves the share attached to a document,
	// nil when the document is not shared.
	GetShareByDocument(ctx context.Context, docID string) (*model.Share, error)
	// GetShareByRecord retrieves a share by its cloud record identity.
	GetShareByRecord(ctx context.Context, recordID string) (*model.Share, error)
	// DeleteShare removes the local mirror of a share.
	DeleteShare(ctx context.Context, docID string) error
}

type SocialStore interface {
	// CreateComment creates a comment on a place.
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListComments retrieves the comments of a place, newest first.
	ListComments(ctx context.Context, placeID string) ([]*model.Comment, error)
	// GetReaction retrieves the reaction of an author on a place,
	// nil when the author has not reacted.
	GetReaction(ctx context.Context, placeID, author string) (*model.Reaction, error)
	// CreateReaction creates a reaction.
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
	// UpdateReaction updates a reaction.
	UpdateReaction(ctx context.Context, reaction *model.Reaction) error
	// DeleteReaction deletes a reaction by ID.
	DeleteReaction(ctx context.Context, id string) error
	// ListReactions retrieves the reactions of a place for one type in
	// creation order.
	ListReactions(ctx context.Context, placeID string, typ model.ReactionType) ([]*model.Reaction, error)
}
