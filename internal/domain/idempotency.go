package domain

import "time"

// Idempotency records the document produced by a POST carrying an
// Idempotency-Key, keyed by (scope, key). Scope is the route that created
// the document so the same key can be reused across endpoints. A replay
// within the TTL returns DocumentID instead of writing again. An empty
// DocumentID marks a reservation whose document is still being written.
type Idempotency struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	Scope      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_scope_key,priority:1"`
	Key        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_scope_key,priority:2"`
	DocumentID string    `gorm:"type:varchar(64);not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
