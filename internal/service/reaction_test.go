package service

import (
	"context"
	"testing"

	"github.com/emrgen/mapshare/internal/model"
	"github.com/emrgen/mapshare/internal/store"
	"github.com/emrgen/mapshare/internal/tester"
	"github.com/stretchr/testify/assert"
)

func setupLedger() *ReactionLedger {
	tester.RemoveDBFile()
	tester.Setup()

	return NewReactionLedger(store.NewGormStore(tester.TestDB()))
}

func TestReactionLedger_Toggle(t *testing.T) {
	ledger := setupLedger()

	state, err := ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionThumbsUp)
	assert.NoError(t, err)
	assert.Equal(t, model.ReactionStateThumbsUp, state)

	// same tap again removes it
	state, err = ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionThumbsUp)
	assert.NoError(t, err)
	assert.Equal(t, model.ReactionStateNone, state)

	state, err = ledger.State(context.TODO(), "place-1", "Alice")
	assert.NoError(t, err)
	assert.Equal(t, model.ReactionStateNone, state)
}

func TestReactionLedger_ToggleSwitch(t *testing.T) {
	ledger := setupLedger()

	_, err := ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionThumbsUp)
	assert.NoError(t, err)

	state, err := ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionThumbsDown)
	assert.NoError(t, err)
	assert.Equal(t, model.ReactionStateThumbsDown, state)

	// switched in place, never two rows per author
	up, down, err := ledger.Counts(context.TODO(), "place-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)
}

func TestReactionLedger_AuthorsIndependent(t *testing.T) {
	ledger := setupLedger()

	_, err := ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionThumbsUp)
	assert.NoError(t, err)
	_, err = ledger.Toggle(context.TODO(), "place-1", "Bob", model.ReactionThumbsUp)
	assert.NoError(t, err)
	_, err = ledger.Toggle(context.TODO(), "place-1", "Carol", model.ReactionThumbsDown)
	assert.NoError(t, err)

	up, down, err := ledger.Counts(context.TODO(), "place-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, up)
	assert.Equal(t, 1, down)

	reactors, err := ledger.ReactorsFor(context.TODO(), "place-1", model.ReactionThumbsUp)
	assert.NoError(t, err)
	assert.Len(t, reactors, 2)
	assert.Equal(t, "Alice", reactors[0].Name)
	assert.Equal(t, "A", reactors[0].Initials)
	assert.Equal(t, "Bob", reactors[1].Name)
}

func TestReactionLedger_InvalidType(t *testing.T) {
	ledger := setupLedger()

	_, err := ledger.Toggle(context.TODO(), "place-1", "Alice", model.ReactionType("heart"))
	assert.ErrorIs(t, err, ErrInvalidReactionType)

	_, err = ledger.ReactorsFor(context.TODO(), "place-1", model.ReactionType(""))
	assert.ErrorIs(t, err, ErrInvalidReactionType)
}
