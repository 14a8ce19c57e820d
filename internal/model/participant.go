package model

import "gorm.io/gorm"

// Participant is a cached collaborator identity. The primary key is the
// stable cloud identity record name, so two processes resolving the same
// collaborator land on the same row.
type Participant struct {
	gorm.Model
	ID         string `gorm:"primaryKey;not null;"`
	GivenName  string
	FamilyName string
	Email      string
	Phone      string
}

// Merge copies the known (non-empty) fields of other into p. The upsert
// is commutative, applying updates in any order converges on the same row.
func (p *Participant) Merge(other *Participant) {
	if other.GivenName != "" {
		p.GivenName = other.GivenName
	}
	if other.FamilyName != "" {
		p.FamilyName = other.FamilyName
	}
	if other.Email != "" {
		p.Email = other.Email
	}
	if other.Phone != "" {
		p.Phone = other.Phone
	}
}
