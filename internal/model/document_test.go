package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_FieldClock(t *testing.T) {
	doc := &Document{ID: "doc-1"}

	assert.True(t, doc.FieldTime(FieldName).IsZero())

	at := time.Now()
	doc.SetName("Summer Trip", at)
	assert.Equal(t, at.UnixNano(), doc.FieldTime(FieldName).UnixNano())

	// an older write never rewinds the clock
	doc.TouchField(FieldName, at.Add(-time.Minute))
	assert.Equal(t, at.UnixNano(), doc.FieldTime(FieldName).UnixNano())

	later := at.Add(time.Minute)
	doc.SetShared(true, later)
	assert.True(t, doc.IsShared)
	assert.Equal(t, later.UnixNano(), doc.FieldTime(FieldIsShared).UnixNano())

	// the name clock is untouched by the is_shared write
	assert.Equal(t, at.UnixNano(), doc.FieldTime(FieldName).UnixNano())
}

func TestDocument_FieldClockCorruptColumn(t *testing.T) {
	doc := &Document{ID: "doc-1", FieldTimes: "not json"}

	assert.True(t, doc.FieldTime(FieldName).IsZero())

	at := time.Now()
	doc.SetName("Summer Trip", at)
	assert.Equal(t, at.UnixNano(), doc.FieldTime(FieldName).UnixNano())
}

func TestParticipant_Merge(t *testing.T) {
	participant := &Participant{ID: "user-1", GivenName: "Alice"}

	participant.Merge(&Participant{ID: "user-1", FamilyName: "Nguyen", Email: "alice@example.com"})
	assert.Equal(t, "Alice", participant.GivenName)
	assert.Equal(t, "Nguyen", participant.FamilyName)
	assert.Equal(t, "alice@example.com", participant.Email)

	// empty fields never overwrite known ones
	participant.Merge(&Participant{ID: "user-1"})
	assert.Equal(t, "Alice", participant.GivenName)
	assert.Equal(t, "Nguyen", participant.FamilyName)
}
