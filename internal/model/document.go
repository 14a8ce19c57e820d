package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Document field names used by the per-field write clock.
const (
	FieldName     = "name"
	FieldIsShared = "is_shared"
)

// Document is the root of a map annotation set. Its ID never changes once
// created; IsShared flips to true only after a share attach is confirmed
// by the replica service.
type Document struct {
	gorm.Model
	ID       string `gorm:"primaryKey;uuid;not null;"`
	Name     string `gorm:"not null"`
	IsShared bool   `gorm:"not null;default:false"`
	// FieldTimes holds a JSON map of field name to the unix nano time of
	// the last write to that field. The sync coordinator uses it to merge
	// concurrently diverged copies field by field.
	FieldTimes string

	Places []*Place `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	Notes  []*Note  `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	Shapes []*Shape `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	Routes []*Route `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	Areas  []*Area  `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// SetName records a name write together with its clock entry.
func (d *Document) SetName(name string, at time.Time) {
	d.Name = name
	d.TouchField(FieldName, at)
}

// SetShared records an is_shared write together with its clock entry.
func (d *Document) SetShared(shared bool, at time.Time) {
	d.IsShared = shared
	d.TouchField(FieldIsShared, at)
}

// FieldTime returns the last recorded write time for a field, zero when
// the field was never touched.
func (d *Document) FieldTime(field string) time.Time {
	times := d.fieldTimes()
	nanos, ok := times[field]
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// TouchField records a write time for a field, keeping the latest value
// when the field already has a newer entry.
func (d *Document) TouchField(field string, at time.Time) {
	times := d.fieldTimes()
	if at.UnixNano() > times[field] {
		times[field] = at.UnixNano()
	}
	d.setFieldTimes(times)
}

func (d *Document) fieldTimes() map[string]int64 {
	times := make(map[string]int64)
	if d.FieldTimes == "" {
		return times
	}
	if err := json.Unmarshal([]byte(d.FieldTimes), &times); err != nil {
		return make(map[string]int64)
	}
	return times
}

func (d *Document) setFieldTimes(times map[string]int64) {
	data, err := json.Marshal(times)
	if err != nil {
		return
	}
	d.FieldTimes = string(data)
}
