package model

import "gorm.io/gorm"

// Share permission levels.
const (
	PermissionReadOnly  = "readOnly"
	PermissionReadWrite = "readWrite"
)

// Share is the local mirror of the cloud access-control record attached
// to a document. DocumentID carries a unique index, a document holds at
// most one active share.
type Share struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	RecordID   string `gorm:"not null;index"`
	DocumentID string `gorm:"uuid;not null;uniqueIndex"`
	OwnerID    string `gorm:"not null"`
	Permission string `gorm:"not null;default:readWrite"`

	Participants []*Participant `gorm:"many2many:share_participants;"`
}
