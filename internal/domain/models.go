// Package domain defines the records the companion API persists and the
// envelope used by the document store. Profiles and notes are stored as JSON
// documents inside named logical collections; Document is the row that
// carries them and is mapped with GORM.
package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/datatypes"
)

// Logical collection names. They double as the public schema listing.
const (
	CollectionMotherProfile = "motherprofile"
	CollectionNote          = "note"
)

// Week bounds for a pregnancy, inclusive.
const (
	MinWeek = 1
	MaxWeek = 42
)

// Collections returns the logical collections in a stable order.
func Collections() []string {
	return []string{CollectionMotherProfile, CollectionNote}
}

// ValidWeek reports whether w is a gestational week in [MinWeek, MaxWeek].
func ValidWeek(w int) bool { return w >= MinWeek && w <= MaxWeek }

// MotherProfile stores a mum's basic profile and pregnancy dates.
//
// Email is the lookup key but uniqueness is not enforced: every submission
// is stored as a new document and lookups return the newest one.
type MotherProfile struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	LastPeriodDate *civil.Date `json:"last_period_date"`
	DueDate        *civil.Date `json:"due_date"`
}

// Note is a short personal note or symptom log for a gestational week.
// Notes reference a profile by email value only.
type Note struct {
	Email string `json:"email"`
	Week  int    `json:"week"`
	Text  string `json:"text"`
}

// Document is the storage envelope for a record in a logical collection.
//
// Fields:
//   - ID: UUID primary key assigned by the SQL store (ObjectID hex for Mongo).
//   - Collection: logical collection name (indexed).
//   - Body: the record serialized as JSON.
//   - CreatedAt: insertion time, used for newest-first ordering.
type Document struct {
	ID         string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Collection string         `json:"collection" gorm:"type:varchar(64);not null;index:idx_documents_collection,priority:1"`
	Body       datatypes.JSON `json:"body"       gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index:idx_documents_collection,priority:2"`
}

// TableName returns the database table name for Document.
func (Document) TableName() string { return "documents" }
