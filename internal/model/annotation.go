package model

import "gorm.io/gorm"

// Note is a free-text annotation anchored to a map coordinate.
type Note struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	DocumentID string `gorm:"uuid;not null;index"`
	Content    string `gorm:"not null"`
	Latitude   float64
	Longitude  float64
	AddedByID  *string `gorm:"uuid"`
}

// Shape is a drawn overlay. Points holds the encoded vertex list, the
// encoding is owned by the rendering layer.
type Shape struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	DocumentID string `gorm:"uuid;not null;index"`
	Kind       string
	Points     string
	AddedByID  *string `gorm:"uuid"`
}

// Route is an ordered waypoint sequence.
type Route struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	DocumentID string `gorm:"uuid;not null;index"`
	Name       string
	Waypoints  string
	Transport  string
	AddedByID  *string `gorm:"uuid"`
}

// Area is a closed boundary overlay.
type Area struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	DocumentID string `gorm:"uuid;not null;index"`
	Name       string
	Boundary   string
	FillColor  string
	AddedByID  *string `gorm:"uuid"`
}
