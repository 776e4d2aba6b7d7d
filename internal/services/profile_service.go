// Package services – ProfileService
//
// This file implements the ProfileService, which stores mother profiles and
// looks up the newest profile for an email. Missing due dates are estimated
// from the last period date (LMP + 280 days) before the profile is written.
//
// Every submission is stored as a new document; there is no upsert by email.
package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tbourn/newmum-companion/internal/domain"
	"github.com/tbourn/newmum-companion/internal/pregnancy"
)

// ProfileInput is the data required to create a profile.
type ProfileInput struct {
	Name           string
	Email          string
	LastPeriodDate *civil.Date
	DueDate        *civil.Date
}

// Profile is a stored profile as returned by lookups.
type Profile struct {
	ID             string      `json:"id" example:"5f0c6a52-0d4b-4f3b-9d7f-0a3e2f1c9b11"`
	Name           string      `json:"name" example:"Ana"`
	Email          string      `json:"email" example:"ana@example.com"`
	LastPeriodDate *civil.Date `json:"last_period_date" swaggertype:"string" example:"2024-01-01"`
	DueDate        *civil.Date `json:"due_date" swaggertype:"string" example:"2024-10-07"`
	CreatedAt      time.Time   `json:"created_at"`
	// CurrentWeek is the gestational week today, when a date is known.
	CurrentWeek *int `json:"current_week,omitempty" example:"14"`
}

// ProfileService implements the profile use-cases on top of a DocumentStore.
type ProfileService struct {
	Store DocumentStore
	// Idem is optional; nil disables idempotent creates.
	Idem    IdempotencyStore
	IdemTTL time.Duration
	// Now is the clock used for current_week; defaults to time.Now.
	Now func() time.Time
}

// NewProfileService constructs a ProfileService.
func NewProfileService(store DocumentStore, idem IdempotencyStore, ttl time.Duration) *ProfileService {
	return &ProfileService{Store: store, Idem: idem, IdemTTL: ttl, Now: time.Now}
}

// Create validates in, resolves the due date and stores the profile.
func (s *ProfileService) Create(ctx context.Context, in ProfileInput, idem IdemKey) (CreateResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return CreateResult{}, Validation(MsgNameRequired)
	}
	if email == "" {
		return CreateResult{}, Validation(MsgEmailRequired)
	}

	rec := domain.MotherProfile{
		Name:           name,
		Email:          email,
		LastPeriodDate: in.LastPeriodDate,
		DueDate:        pregnancy.ResolveDueDate(in.LastPeriodDate, in.DueDate),
	}
	return createOnce(ctx, idem, s.Idem, s.IdemTTL, func() (string, error) {
		return s.Store.CreateDocument(ctx, domain.CollectionMotherProfile, rec)
	})
}

// Latest returns the most recently stored profile for email.
func (s *ProfileService) Latest(ctx context.Context, email string) (*Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, Validation(MsgEmailRequired)
	}

	docs, err := s.Store.GetDocuments(ctx, domain.CollectionMotherProfile, map[string]any{"email": email}, 1)
	if err != nil {
		return nil, Store(err)
	}
	if len(docs) == 0 {
		return nil, NotFound(MsgProfileNotFound)
	}

	var rec domain.MotherProfile
	if err := json.Unmarshal(docs[0].Body, &rec); err != nil {
		return nil, Store(err)
	}
	p := &Profile{
		ID:             docs[0].ID,
		Name:           rec.Name,
		Email:          rec.Email,
		LastPeriodDate: rec.LastPeriodDate,
		DueDate:        rec.DueDate,
		CreatedAt:      docs[0].CreatedAt,
	}
	if lmp, ok := s.lmpOf(rec); ok {
		w := pregnancy.GestationalWeek(lmp, civil.DateOf(s.now().UTC()))
		p.CurrentWeek = &w
	}
	return p, nil
}

// lmpOf returns the LMP, deriving it from the due date when only that is known.
func (s *ProfileService) lmpOf(rec domain.MotherProfile) (civil.Date, bool) {
	switch {
	case rec.LastPeriodDate != nil:
		return *rec.LastPeriodDate, true
	case rec.DueDate != nil:
		return rec.DueDate.AddDays(-pregnancy.GestationDays), true
	}
	return civil.Date{}, false
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
