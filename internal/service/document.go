package service

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store store.Store, sync *SyncCoordinator) *DocumentService {
	return &DocumentService{
		store: store,
		sync:  sync,
	}
}

// DocumentService manages map documents and their annotation
// collections. All writes commit through the sync coordinator so the
// merge policy stays the single write path.
type DocumentService struct {
	store store.Store
	sync  *SyncCoordinator
}

// CreateDocument creates an empty map document.
func (d *DocumentService) CreateDocument(ctx context.Context, name string) (*model.Document, error) {
	doc := &model.Document{
		ID: uuid.New().String(),
	}
	doc.SetName(name, time.Now())

	if err := d.sync.Commit(ctx, doc); err != nil {
		return nil, err
	}

	logrus.Infof("created document %s (%s)", doc.Name, doc.ID)
	return doc, nil
}

// GetDocument retrieves a document by ID.
func (d *DocumentService) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	doc, err := d.store.GetDocument(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments retrieves all documents, most recently modified first.
func (d *DocumentService) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	return d.store.ListDocuments(ctx)
}

// RenameDocument commits a name change through the merge policy.
func (d *DocumentService) RenameDocument(ctx context.Context, id, name string) (*model.Document, error) {
	doc, err := d.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.SetName(name, time.Now())
	if err := d.sync.Commit(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument deletes a document and every annotation it owns.
func (d *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return d.store.DeleteDocument(ctx, id)
}

// AddPlace pins a place onto a document.
func (d *DocumentService) AddPlace(ctx context.Context, docID string, place *model.Place, addedBy string) (*model.Place, error) {
	if _, err := d.GetDocument(ctx, docID); err != nil {
		return nil, err
	}

	place.ID = uuid.New().String()
	place.DocumentID = docID
	if place.IconName == "" {
		place.IconName = "mappin"
	}
	if place.IconColor == "" {
		place.IconColor = "#FF3B30"
	}
	if addedBy != "" {
		place.AddedByID = &addedBy
	}

	if err := d.store.SavePlace(ctx, place); err != nil {
		return nil, ErrPersistFailed
	}

	return place, nil
}

// ListPlaces lists the places of a document.
func (d *DocumentService) ListPlaces(ctx context.Context, docID string) ([]*model.Place, error) {
	return d.store.ListPlaces(ctx, docID)
}

// RemovePlace deletes a place.
func (d *DocumentService) RemovePlace(ctx context.Context, id string) error {
	return d.store.DeletePlace(ctx, id)
}

// AddNote anchors a note onto a document.
func (d *DocumentService) AddNote(ctx context.Context, docID string, note *model.Note, addedBy string) (*model.Note, error) {
	if _, err := d.GetDocument(ctx, docID); err != nil {
		return nil, err
	}

	note.ID = uuid.New().String()
	note.DocumentID = docID
	if addedBy != "" {
		note.AddedByID = &addedBy
	}

	if err := d.store.SaveNote(ctx, note); err != nil {
		return nil, ErrPersistFailed
	}

	return note, nil
}

// ListNotes lists the notes of a document, newest first.
func (d *DocumentService) ListNotes(ctx context.Context, docID string) ([]*model.Note, error) {
	return d.store.ListNotes(ctx, docID)
}

// AddShape draws a shape onto a document.
func (d *DocumentService) AddShape(ctx context.Context, docID string, shape *model.Shape, addedBy string) (*model.Shape, error) {
	if _, err := d.GetDocument(ctx, docID); err != nil {
		return nil, err
	}

	shape.ID = uuid.New().String()
	shape.DocumentID = docID
	if addedBy != "" {
		shape.AddedByID = &addedBy
	}

	if err := d.store.SaveShape(ctx, shape); err != nil {
		return nil, ErrPersistFailed
	}

	return shape, nil
}

// AddRoute adds a route to a document.
func (d *DocumentService) AddRoute(ctx context.Context, docID string, route *model.Route, addedBy string) (*model.Route, error) {
	if _, err := d.GetDocument(ctx, docID); err != nil {
		return nil, err
	}

	route.ID = uuid.New().String()
	route.DocumentID = docID
	if addedBy != "" {
		route.AddedByID = &addedBy
	}

	if err := d.store.SaveRoute(ctx, route); err != nil {
		return nil, ErrPersistFailed
	}

	return route, nil
}

// AddArea adds an area to a document.
func (d *DocumentService) AddArea(ctx context.Context, docID string, area *model.Area, addedBy string) (*model.Area, error) {
	if _, err := d.GetDocument(ctx, docID); err != nil {
		return nil, err
	}

	area.ID = uuid.New().String()
	area.DocumentID = docID
	if addedBy != "" {
		area.AddedByID = &addedBy
	}

	if err := d.store.SaveArea(ctx, area); err != nil {
		return nil, ErrPersistFailed
	}

	return area, nil
}

// AddComment appends a comment to a place.
func (d *DocumentService) AddComment(ctx context.Context, placeID, author, content string) (*model.Comment, error) {
	if _, err := d.store.GetPlace(ctx, placeID); err != nil {
		return nil, ErrDocumentNotFound
	}

	comment := &model.Comment{
		ID:         uuid.New().String(),
		PlaceID:    placeID,
		AuthorName: author,
		Content:    content,
	}

	if err := d.store.CreateComment(ctx, comment); err != nil {
		return nil, ErrPersistFailed
	}

	return comment, nil
}

// ListComments lists the comments of a place, newest first.
func (d *DocumentService) ListComments(ctx context.Context, placeID string) ([]*model.Comment, error) {
	return d.store.ListComments(ctx, placeID)
}
