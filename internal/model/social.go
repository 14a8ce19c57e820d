package model

import "gorm.io/gorm"

// ReactionType is the closed set of supported reactions.
type ReactionType string

const (
	ReactionThumbsUp   ReactionType = "thumbsUp"
	ReactionThumbsDown ReactionType = "thumbsDown"
)

// Valid reports whether t is one of the supported reaction types.
func (t ReactionType) Valid() bool {
	return t == ReactionThumbsUp || t == ReactionThumbsDown
}

// ReactionState is the resulting state of a toggle for one author.
type ReactionState string

const (
	ReactionStateNone       ReactionState = "none"
	ReactionStateThumbsUp   ReactionState = ReactionState(ReactionThumbsUp)
	ReactionStateThumbsDown ReactionState = ReactionState(ReactionThumbsDown)
)

// Comment belongs to one place. AuthorName is free text and may or may
// not correspond to a cached participant.
type Comment struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	PlaceID    string `gorm:"uuid;not null;index"`
	AuthorName string `gorm:"not null"`
	Content    string `gorm:"not null"`
}

// Reaction belongs to one place. The single-reaction-per-(place, author)
// invariant is enforced by the reaction ledger, not by a unique index.
type Reaction struct {
	gorm.Model
	ID         string       `gorm:"primaryKey;uuid;not null;"`
	PlaceID    string       `gorm:"uuid;not null;index"`
	AuthorName string       `gorm:"not null"`
	Type       ReactionType `gorm:"not null"`
}
