package model

import "gorm.io/gorm"

// Place is a pinned point annotation owned by exactly one document.
type Place struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	DocumentID  string `gorm:"uuid;not null;index"`
	Name        string `gorm:"not null"`
	Latitude    float64
	Longitude   float64
	IconName    string
	IconColor   string
	Description string
	// AddedByID is a weak reference to the participant that created the
	// place. Deleting the participant must not cascade here.
	AddedByID *string `gorm:"uuid"`
}
