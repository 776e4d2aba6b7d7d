package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (Document{}).TableName() != "documents" {
		t.Fatalf("Document.TableName() = %q; want %q", (Document{}).TableName(), "documents")
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q; want %q", (Idempotency{}).TableName(), "idempotency")
	}
}

func TestCollections_StableOrder(t *testing.T) {
	got := Collections()
	if len(got) != 2 || got[0] != "motherprofile" || got[1] != "note" {
		t.Fatalf("Collections() = %v", got)
	}
	// Callers must not be able to mutate the shared listing.
	got[0] = "x"
	if Collections()[0] != "motherprofile" {
		t.Fatalf("Collections() returned shared slice")
	}
}

func TestValidWeek(t *testing.T) {
	for _, w := range []int{1, 2, 20, 41, 42} {
		if !ValidWeek(w) {
			t.Fatalf("ValidWeek(%d) = false", w)
		}
	}
	for _, w := range []int{-1, 0, 43, 100} {
		if ValidWeek(w) {
			t.Fatalf("ValidWeek(%d) = true", w)
		}
	}
}

func TestMotherProfile_JSONDates(t *testing.T) {
	lmp := civil.Date{Year: 2024, Month: time.January, Day: 1}
	p := MotherProfile{Name: "Ana", Email: "ana@example.com", LastPeriodDate: &lmp}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"last_period_date":"2024-01-01"`) || !strings.Contains(s, `"due_date":null`) {
		t.Fatalf("unexpected profile JSON: %s", s)
	}

	var back MotherProfile
	if err := json.Unmarshal([]byte(`{"name":"B","email":"b@x","due_date":"2024-10-07"}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.LastPeriodDate != nil || back.DueDate == nil || back.DueDate.String() != "2024-10-07" {
		t.Fatalf("unexpected decoded profile: %+v", back)
	}
}

func TestMigrations_DocumentsAndIdempotency(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&Document{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasIndex(&Document{}, "idx_documents_collection") {
		t.Fatalf("expected index idx_documents_collection on documents")
	}
	if !m.HasIndex(&Idempotency{}, "ux_scope_key") {
		t.Fatalf("expected unique index ux_scope_key on idempotency")
	}

	doc := &Document{
		ID:         "d1",
		Collection: CollectionNote,
		Body:       datatypes.JSON(`{"email":"a@b.c","week":3,"text":"hi"}`),
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("insert document: %v", err)
	}
	var got Document
	if err := db.First(&got, "id = ?", "d1").Error; err != nil {
		t.Fatalf("load document: %v", err)
	}
	var n Note
	if err := json.Unmarshal(got.Body, &n); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if n.Week != 3 || n.Email != "a@b.c" || n.Text != "hi" {
		t.Fatalf("round-tripped note mismatch: %+v", n)
	}

	now := time.Now().UTC()
	rec := Idempotency{ID: "i1", Scope: "/notes", Key: "k", DocumentID: "d1", Status: 200, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("insert idempotency: %v", err)
	}
	dup := Idempotency{ID: "i2", Scope: "/notes", Key: "k", DocumentID: "d2", Status: 200, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique violation on (scope,key)")
	}
	other := Idempotency{ID: "i3", Scope: "/profile", Key: "k", DocumentID: "d3", Status: 200, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("same key in another scope should be allowed: %v", err)
	}
}
