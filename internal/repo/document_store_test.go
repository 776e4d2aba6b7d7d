package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gorm.io/datatypes"

	"github.com/tbourn/newmum-companion/internal/domain"
)

func TestCreateDocument_Error_NoTable(t *testing.T) {
	s := NewSQLStore(newTestDB(t /* no migrations */))
	if _, err := s.CreateDocument(context.Background(), domain.CollectionNote, domain.Note{Email: "a@b.c"}); err == nil {
		t.Fatalf("expected error when table is missing")
	}
}

func TestCreateDocument_Error_Unencodable(t *testing.T) {
	s := NewSQLStore(newTestDB(t, &domain.Document{}))
	if _, err := s.CreateDocument(context.Background(), domain.CollectionNote, map[string]any{"bad": make(chan int)}); err == nil {
		t.Fatalf("expected encode error")
	}
}

func TestCreateDocument_Success_PersistsBody(t *testing.T) {
	db := newTestDB(t, &domain.Document{})
	s := NewSQLStore(db)

	note := domain.Note{Email: "ana@example.com", Week: 12, Text: "felt a kick"}
	id, err := s.CreateDocument(context.Background(), domain.CollectionNote, note)
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty id")
	}

	var got domain.Document
	if err := db.First(&got, "id = ?", id).Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Collection != domain.CollectionNote {
		t.Fatalf("collection = %q", got.Collection)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
	var back domain.Note
	if err := json.Unmarshal(got.Body, &back); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if diff := cmp.Diff(note, back); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestGetDocuments_EmptyCollection_ReturnsNonNilSlice(t *testing.T) {
	s := NewSQLStore(newTestDB(t, &domain.Document{}))
	docs, err := s.GetDocuments(context.Background(), domain.CollectionNote, map[string]any{"email": "x@y.z"}, 100)
	if err != nil {
		t.Fatalf("GetDocuments: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", docs)
	}
}

func TestGetDocuments_Error_NoTable(t *testing.T) {
	s := NewSQLStore(newTestDB(t))
	if _, err := s.GetDocuments(context.Background(), domain.CollectionNote, nil, 0); err == nil {
		t.Fatalf("expected error when table is missing")
	}
}

func TestGetDocuments_FiltersByFieldsAndCollection(t *testing.T) {
	s := NewSQLStore(newTestDB(t, &domain.Document{}))
	ctx := context.Background()

	seed := []struct {
		coll string
		rec  any
	}{
		{domain.CollectionNote, domain.Note{Email: "ana@example.com", Week: 12, Text: "a"}},
		{domain.CollectionNote, domain.Note{Email: "ana@example.com", Week: 13, Text: "b"}},
		{domain.CollectionNote, domain.Note{Email: "bea@example.com", Week: 12, Text: "c"}},
		{domain.CollectionMotherProfile, domain.MotherProfile{Name: "Ana", Email: "ana@example.com"}},
	}
	for _, sd := range seed {
		if _, err := s.CreateDocument(ctx, sd.coll, sd.rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	byEmail, err := s.GetDocuments(ctx, domain.CollectionNote, map[string]any{"email": "ana@example.com"}, 0)
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if len(byEmail) != 2 {
		t.Fatalf("by email: got %d docs, want 2", len(byEmail))
	}
	for _, d := range byEmail {
		if d.Collection != domain.CollectionNote {
			t.Fatalf("leaked collection %q", d.Collection)
		}
	}

	byWeek, err := s.GetDocuments(ctx, domain.CollectionNote, map[string]any{"email": "ana@example.com", "week": 12}, 0)
	if err != nil {
		t.Fatalf("by email+week: %v", err)
	}
	if len(byWeek) != 1 {
		t.Fatalf("by email+week: got %d docs, want 1", len(byWeek))
	}
	var n domain.Note
	if err := json.Unmarshal(byWeek[0].Body, &n); err != nil || n.Text != "a" {
		t.Fatalf("unexpected note %+v err=%v", n, err)
	}

	profiles, err := s.GetDocuments(ctx, domain.CollectionMotherProfile, map[string]any{"email": "ana@example.com"}, 0)
	if err != nil || len(profiles) != 1 {
		t.Fatalf("profiles: n=%d err=%v", len(profiles), err)
	}
}

func TestGetDocuments_NewestFirstAndLimit(t *testing.T) {
	db := newTestDB(t, &domain.Document{})
	s := NewSQLStore(db)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"d1", "d2", "d3"} {
		doc := &domain.Document{
			ID:         id,
			Collection: domain.CollectionNote,
			Body:       datatypes.JSON(`{"email":"ana@example.com","week":1,"text":"` + id + `"}`),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(doc).Error; err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	docs, err := s.GetDocuments(context.Background(), domain.CollectionNote, map[string]any{"email": "ana@example.com"}, 2)
	if err != nil {
		t.Fatalf("GetDocuments: %v", err)
	}
	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if diff := cmp.Diff([]string{"d3", "d2"}, ids); diff != "" {
		t.Fatalf("order/limit mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]any{"week": 1, "email": "x", "a": nil})
	if diff := cmp.Diff([]string{"a", "email", "week"}, got); diff != "" {
		t.Fatalf("sortedKeys (-want +got):\n%s", diff)
	}
	if got := sortedKeys(nil); len(got) != 0 {
		t.Fatalf("expected empty keys, got %v", got)
	}
}

func TestFilterValue_SQLiteKeepsScalars(t *testing.T) {
	s := NewSQLStore(newTestDB(t))
	if v := s.filterValue(12); v != 12 {
		t.Fatalf("filterValue(12) = %#v", v)
	}
	if v := s.filterValue("x"); v != "x" {
		t.Fatalf("filterValue(x) = %#v", v)
	}
}
