// Package services – NoteService
//
// This file implements the NoteService, which stores short personal notes
// tied to a gestational week and lists them by email (and optionally week).
// Input is validated before anything reaches the store.
package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// NotesListLimit caps the number of notes returned by List.
const NotesListLimit = 100

// NoteItem is a stored note as returned by List.
type NoteItem struct {
	ID        string    `json:"id" example:"5f0c6a52-0d4b-4f3b-9d7f-0a3e2f1c9b11"`
	Email     string    `json:"email" example:"ana@example.com"`
	Week      int       `json:"week" example:"12"`
	Text      string    `json:"text" example:"Felt the first flutter today"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteService implements the note use-cases on top of a DocumentStore.
type NoteService struct {
	Store DocumentStore
	// Idem is optional; nil disables idempotent creates.
	Idem    IdempotencyStore
	IdemTTL time.Duration
}

// NewNoteService constructs a NoteService.
func NewNoteService(store DocumentStore, idem IdempotencyStore, ttl time.Duration) *NoteService {
	return &NoteService{Store: store, Idem: idem, IdemTTL: ttl}
}

// ValidateNote checks the fields of n. Week must lie in [1, 42]; email and
// text must be non-blank.
func ValidateNote(n domain.Note) error {
	if strings.TrimSpace(n.Email) == "" {
		return Validation(MsgEmailRequired)
	}
	if !domain.ValidWeek(n.Week) {
		return Validation(MsgWeekRange)
	}
	if strings.TrimSpace(n.Text) == "" {
		return Validation(MsgTextRequired)
	}
	return nil
}

// Create validates n and stores it in the note collection.
func (s *NoteService) Create(ctx context.Context, n domain.Note, idem IdemKey) (CreateResult, error) {
	if err := ValidateNote(n); err != nil {
		return CreateResult{}, err
	}
	n.Email = strings.TrimSpace(n.Email)
	return createOnce(ctx, idem, s.Idem, s.IdemTTL, func() (string, error) {
		return s.Store.CreateDocument(ctx, domain.CollectionNote, n)
	})
}

// List returns up to NotesListLimit notes for email, newest first. When week
// is non-nil only notes for that week are returned.
func (s *NoteService) List(ctx context.Context, email string, week *int) ([]NoteItem, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, Validation(MsgEmailRequired)
	}
	filter := map[string]any{"email": email}
	if week != nil {
		filter["week"] = *week
	}

	docs, err := s.Store.GetDocuments(ctx, domain.CollectionNote, filter, NotesListLimit)
	if err != nil {
		return nil, Store(err)
	}

	items := make([]NoteItem, 0, len(docs))
	for _, d := range docs {
		var n domain.Note
		if err := json.Unmarshal(d.Body, &n); err != nil {
			return nil, Store(err)
		}
		items = append(items, NoteItem{
			ID:        d.ID,
			Email:     n.Email,
			Week:      n.Week,
			Text:      n.Text,
			CreatedAt: d.CreatedAt,
		})
	}
	return items, nil
}
