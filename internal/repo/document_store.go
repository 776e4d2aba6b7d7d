// Package repo implements the data persistence layer. This file provides the
// SQL document store: records of every logical collection share one
// documents table and are kept as JSON bodies.
//
// The store follows the "thin repository" approach: it encodes, inserts and
// filters, leaving validation and response shaping to the services package.
//
// Error semantics:
//   - CreateDocument either inserts the whole row or returns the raw gorm
//     error; there is no partial write.
//   - GetDocuments returns an empty, non-nil slice when nothing matches.
//
// Usage:
//
//	store := repo.NewSQLStore(db)
//	id, err := store.CreateDocument(ctx, domain.CollectionNote, note)
//	docs, err := store.GetDocuments(ctx, domain.CollectionNote,
//	    map[string]any{"email": "ana@example.com", "week": 12}, 100)
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// SQLStore is a document store over a GORM handle (SQLite or PostgreSQL).
// It is safe for concurrent use.
type SQLStore struct {
	DB *gorm.DB
}

// NewSQLStore returns a store bound to db. The documents table must exist
// (see AutoMigrate).
func NewSQLStore(db *gorm.DB) *SQLStore { return &SQLStore{DB: db} }

// CreateDocument serializes record as JSON and inserts it into collection.
// The returned id is a UUID string.
func (s *SQLStore) CreateDocument(ctx context.Context, collection string, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode %s record: %w", collection, err)
	}
	doc := &domain.Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Body:       datatypes.JSON(body),
		CreatedAt:  time.Now().UTC(),
	}
	err = s.DB.WithContext(ctx).Create(doc).Error
	observe(backendSQL, "create", collection, err)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetDocuments returns up to limit documents of collection whose JSON body
// has every filter field equal to the given value, newest first. A limit
// <= 0 means no cap.
func (s *SQLStore) GetDocuments(ctx context.Context, collection string, filter map[string]any, limit int) ([]domain.Document, error) {
	q := s.DB.WithContext(ctx).Where("collection = ?", collection)
	for _, k := range sortedKeys(filter) {
		q = q.Where(datatypes.JSONQuery("body").Equals(s.filterValue(filter[k]), k))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	out := []domain.Document{}
	err := q.Order("created_at desc").Find(&out).Error
	observe(backendSQL, "find", collection, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// filterValue adapts a filter value to the dialect's JSON comparison.
// PostgreSQL extracts JSON fields as text, so scalars compare as strings.
func (s *SQLStore) filterValue(v any) any {
	if s.DB.Dialector.Name() == "postgres" {
		if _, ok := v.(string); !ok {
			return fmt.Sprint(v)
		}
	}
	return v
}

// sortedKeys keeps generated SQL stable across calls.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
