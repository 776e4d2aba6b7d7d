// Note HTTP handlers.
//
// This file exposes REST endpoints for notes:
//   - POST /notes   (store a note for a week)
//   - GET  /notes   (list notes by email and optional week)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/domain"
	"github.com/tbourn/newmum-companion/internal/services"
	"github.com/tbourn/newmum-companion/internal/utils"
)

// CreateNoteRequest is the JSON payload for creating a note.
type CreateNoteRequest struct {
	Email string `json:"email" example:"ana@example.com"`
	// Week is required and must lie in 1-42.
	Week *int   `json:"week" example:"12"`
	Text string `json:"text" example:"Felt the first flutter today"`
}

// Validate checks the fields before anything is stored.
func (r CreateNoteRequest) Validate() error {
	if r.Week == nil {
		return services.Validation("week is required")
	}
	return services.ValidateNote(r.note())
}

func (r CreateNoteRequest) note() domain.Note {
	n := domain.Note{Email: r.Email, Text: r.Text}
	if r.Week != nil {
		n.Week = *r.Week
	}
	return n
}

// NotesResponse wraps a list of notes.
type NotesResponse struct {
	Items []services.NoteItem `json:"items"`
}

// CreateNote godoc
// @ID          createNote
// @Summary     Create a note
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body  body  handlers.CreateNoteRequest  true  "Note payload"
// @Success     200  {object}  handlers.CreatedResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     422  {object}  handlers.ErrorResponse  "Invalid fields (e.g. week outside 1-42)"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /notes [post]
func (h *Handlers) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if !bindBody(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failFrom(c, err, http.StatusUnprocessableEntity)
		return
	}

	res, err := h.noteSvc.Create(c.Request.Context(), req.note(), idemKey(c))
	if err != nil {
		failFrom(c, err, http.StatusUnprocessableEntity)
		return
	}
	created(c, res)
}

// ListNotes godoc
// @ID          listNotes
// @Summary     List notes
// @Description Returns up to 100 notes for the email, newest first, optionally for one week.
// @Tags        Notes
// @Produce     json
// @Param       email  query  string  true   "Owner email"
// @Param       week   query  int     false  "Gestational week"
// @Success     200  {object}  handlers.NotesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing email or bad week"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /notes [get]
func (h *Handlers) ListNotes(c *gin.Context) {
	week, err := utils.OptionalInt(c.Query("week"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "week must be an integer")
		return
	}
	items, err := h.noteSvc.List(c.Request.Context(), c.Query("email"), week)
	if err != nil {
		failFrom(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, NotesResponse{Items: items})
}
