package service

import (
	"context"

	"github.com/emrgen/mapshare/internal/identity"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/google/uuid"
)

// NewReactionLedger creates a new ReactionLedger.
func NewReactionLedger(store store.Store) *ReactionLedger {
	return &ReactionLedger{
		store: store,
	}
}

// ReactionLedger enforces the single-reaction-per-participant-per-place
// invariant. The invariant lives here, not in a storage unique index.
type ReactionLedger struct {
	store store.Store
}

// Toggle applies one reaction tap: an existing reaction of the same type
// is removed, a different type is switched in place, otherwise a new
// reaction is created. Returns the author's resulting state.
func (l *ReactionLedger) Toggle(ctx context.Context, placeID, author string, typ model.ReactionType) (model.ReactionState, error) {
	if !typ.Valid() {
		return model.ReactionStateNone, ErrInvalidReactionType
	}

	state := model.ReactionStateNone

	err := l.store.Transaction(ctx, func(tx store.Store) error {
		existing, err := tx.GetReaction(ctx, placeID, author)
		if err != nil {
			return err
		}

		if existing == nil {
			state = model.ReactionState(typ)
			return tx.CreateReaction(ctx, &model.Reaction{
				ID:         uuid.New().String(),
				PlaceID:    placeID,
				AuthorName: author,
				Type:       typ,
			})
		}

		if existing.Type == typ {
			state = model.ReactionStateNone
			return tx.DeleteReaction(ctx, existing.ID)
		}

		existing.Type = typ
		state = model.ReactionState(typ)
		return tx.UpdateReaction(ctx, existing)
	})
	if err != nil {
		return model.ReactionStateNone, ErrPersistFailed
	}

	return state, nil
}

// State returns the author's current reaction state for a place.
func (l *ReactionLedger) State(ctx context.Context, placeID, author string) (model.ReactionState, error) {
	existing, err := l.store.GetReaction(ctx, placeID, author)
	if err != nil {
		return model.ReactionStateNone, err
	}
	if existing == nil {
		return model.ReactionStateNone, nil
	}

	return model.ReactionState(existing.Type), nil
}

// ReactorsFor lists the display identities of everyone holding the given
// reaction on a place, in reaction creation order.
func (l *ReactionLedger) ReactorsFor(ctx context.Context, placeID string, typ model.ReactionType) ([]identity.Display, error) {
	if !typ.Valid() {
		return nil, ErrInvalidReactionType
	}

	reactions, err := l.store.ListReactions(ctx, placeID, typ)
	if err != nil {
		return nil, err
	}

	reactors := make([]identity.Display, 0, len(reactions))
	for _, reaction := range reactions {
		reactors = append(reactors, identity.DisplayOfName(reaction.AuthorName))
	}

	return reactors, nil
}

// Counts returns the thumbs up and thumbs down totals for a place.
func (l *ReactionLedger) Counts(ctx context.Context, placeID string) (up int, down int, err error) {
	ups, err := l.store.ListReactions(ctx, placeID, model.ReactionThumbsUp)
	if err != nil {
		return 0, 0, err
	}

	downs, err := l.store.ListReactions(ctx, placeID, model.ReactionThumbsDown)
	if err != nil {
		return 0, 0, err
	}

	return len(ups), len(downs), nil
}
