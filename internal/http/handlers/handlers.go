// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin:
//   - parse and validate query/body inputs
//   - delegate to application services
//   - map service errors to the standard error envelope (see response.go)
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/content"
	"github.com/tbourn/newmum-companion/internal/domain"
	"github.com/tbourn/newmum-companion/internal/http/middleware"
	"github.com/tbourn/newmum-companion/internal/services"
)

//
// Service contracts
//

// ProfileService defines the profile operations required by the handlers.
type ProfileService interface {
	// Create stores a profile, resolving the due date when omitted.
	Create(ctx context.Context, in services.ProfileInput, idem services.IdemKey) (services.CreateResult, error)
	// Latest returns the newest profile for email.
	Latest(ctx context.Context, email string) (*services.Profile, error)
}

// NoteService defines the note operations required by the handlers.
type NoteService interface {
	Create(ctx context.Context, n domain.Note, idem services.IdemKey) (services.CreateResult, error)
	List(ctx context.Context, email string, week *int) ([]services.NoteItem, error)
}

// ContentService defines the static content lookups required by the handlers.
type ContentService interface {
	Week(w int) (content.WeeklyStage, error)
	AllWeeks() []content.WeeklyStage
	Birth(mode string) (content.BirthModeContent, error)
	Search(q string, limit int) ([]services.SearchHit, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the companion API.
type Handlers struct {
	profileSvc ProfileService
	noteSvc    NoteService
	contentSvc ContentService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(profileSvc ProfileService, noteSvc NoteService, contentSvc ContentService) *Handlers {
	return &Handlers{profileSvc: profileSvc, noteSvc: noteSvc, contentSvc: contentSvc}
}

//
// Shared DTOs
//

// CreatedResponse is returned by endpoints that store a document.
type CreatedResponse struct {
	Status string `json:"status" example:"ok"`
	ID     string `json:"id" example:"5f0c6a52-0d4b-4f3b-9d7f-0a3e2f1c9b11"`
}

// HeaderIdempotencyReplayed is set to "true" when a create was served from
// an earlier request with the same Idempotency-Key.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

//
// Helpers
//

// idemKey returns the validated Idempotency-Key scoped by route.
func idemKey(c *gin.Context) services.IdemKey {
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return services.IdemKey{}
	}
	return services.IdemKey{Scope: c.FullPath(), Key: key}
}

// created writes the standard create response.
func created(c *gin.Context, res services.CreateResult) {
	if res.Replayed {
		c.Header(HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusOK, CreatedResponse{Status: "ok", ID: res.ID})
}

// bindBody decodes the JSON body into dst. Malformed JSON is a 400; a body
// that parses but carries wrongly typed fields is a 422. It reports whether
// decoding succeeded; on failure the response has been written.
func bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var syn *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syn):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
	default:
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
	}
	return false
}
