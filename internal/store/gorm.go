package store

import (
	"context"
	"errors"

	"github.com/emrgen/mapshare/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Create(doc).Error
}

func (g *GormStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *GormStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Order("updated_at desc").Find(&docs).Error
	return docs, err
}

func (g *GormStore) UpdateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Save(doc).Error
}

func (g *GormStore) DeleteDocument(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Place{}, &model.Note{}, &model.Shape{}, &model.Route{}, &model.Area{},
		} {
			if err := tx.Where("document_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.Document{}).Error
	})
}

func (g *GormStore) SavePlace(ctx context.Context, place *model.Place) error {
	return g.db.WithContext(ctx).Save(place).Error
}

func (g *GormStore) ListPlaces(ctx context.Context, docID string) ([]*model.Place, error) {
	var places []*model.Place
	err := g.db.WithContext(ctx).Where("document_id = ?", docID).Order("name asc").Find(&places).Error
	return places, err
}

func (g *GormStore) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&place).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (g *GormStore) DeletePlace(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Place{}).Error
}

func (g *GormStore) SaveNote(ctx context.Context, note *model.Note) error {
	return g.db.WithContext(ctx).Save(note).Error
}

func (g *GormStore) ListNotes(ctx context.Context, docID string) ([]*model.Note, error) {
	var notes []*model.Note
	err := g.db.WithContext(ctx).Where("document_id = ?", docID).Order("created_at desc").Find(&notes).Error
	return notes, err
}

func (g *GormStore) DeleteNote(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{}).Error
}

func (g *GormStore) SaveShape(ctx context.Context, shape *model.Shape) error {
	return g.db.WithContext(ctx).Save(shape).Error
}

func (g *GormStore) ListShapes(ctx context.Context, docID string) ([]*model.Shape, error) {
	var shapes []*model.Shape
	err := g.db.WithContext(ctx).Where("document_id = ?", docID).Order("created_at desc").Find(&shapes).Error
	return shapes, err
}

func (g *GormStore) DeleteShape(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Shape{}).Error
}

func (g *GormStore) SaveRoute(ctx context.Context, route *model.Route) error {
	return g.db.WithContext(ctx).Save(route).Error
}

func (g *GormStore) ListRoutes(ctx context.Context, docID string) ([]*model.Route, error) {
	var routes []*model.Route
	err := g.db.WithContext(ctx).Where("document_id = ?", docID).Order("name asc").Find(&routes).Error
	return routes, err
}

func (g *GormStore) DeleteRoute(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Route{}).Error
}

func (g *GormStore) SaveArea(ctx context.Context, area *model.Area) error {
	return g.db.WithContext(ctx).Save(area).Error
}

func (g *GormStore) ListAreas(ctx context.Context, docID string) ([]*model.Area, error) {
	var areas []*model.Area
	err := g.db.WithContext(ctx).Where("document_id = ?", docID).Order("name asc").Find(&areas).Error
	return areas, err
}

func (g *GormStore) DeleteArea(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Area{}).Error
}

func (g *GormStore) GetParticipant(ctx context.Context, id string) (*model.Participant, error) {
	var participant model.Participant
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (g *GormStore) FindOrCreateParticipant(ctx context.Context, participant *model.Participant) (*model.Participant, error) {
	var existing model.Participant
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", participant.ID).First(&existing).Error
		if err == nil {
			existing.Merge(participant)
			return tx.Save(&existing).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		existing = *participant
		return tx.Create(&existing).Error
	})
	if err != nil {
		return nil, err
	}

	return &existing, nil
}

func (g *GormStore) CreateShare(ctx context.Context, share *model.Share) error {
	return g.db.WithContext(ctx).Create(share).Error
}

func (g *GormStore) GetShareByDocument(ctx context.Context, docID string) (*model.Share, error) {
	var share model.Share
	err := g.db.WithContext(ctx).Preload("Participants").Where("document_id = ?", docID).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (g *GormStore) GetShareByRecord(ctx context.Context, recordID string) (*model.Share, error) {
	var share model.Share
	err := g.db.WithContext(ctx).Preload("Participants").Where("record_id = ?", recordID).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (g *GormStore) DeleteShare(ctx context.Context, docID string) error {
	return g.db.WithContext(ctx).Where("document_id = ?", docID).Delete(&model.Share{}).Error
}

func (g *GormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return g.db.WithContext(ctx).Create(comment).Error
}

func (g *GormStore) ListComments(ctx context.Context, placeID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := g.db.WithContext(ctx).Where("place_id = ?", placeID).Order("created_at desc").Find(&comments).Error
	return comments, err
}

func (g *GormStore) GetReaction(ctx context.Context, placeID, author string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := g.db.WithContext(ctx).Where("place_id = ? AND author_name = ?", placeID, author).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (g *GormStore) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	return g.db.WithContext(ctx).Create(reaction).Error
}

func (g *GormStore) UpdateReaction(ctx context.Context, reaction *model.Reaction) error {
	return g.db.WithContext(ctx).Save(reaction).Error
}

func (g *GormStore) DeleteReaction(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reaction{}).Error
}

func (g *GormStore) ListReactions(ctx context.Context, placeID string, typ model.ReactionType) ([]*model.Reaction, error) {
	var reactions []*model.Reaction
	err := g.db.WithContext(ctx).
		Where("place_id = ? AND type = ?", placeID, typ).
		Order("created_at asc").
		Find(&reactions).Error
	return reactions, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
