// Profile HTTP handlers.
//
// This file exposes REST endpoints for mother profiles:
//   - POST /profile   (store a profile; due date estimated when omitted)
//   - GET  /profile   (newest profile for an email, with current week)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and an earlier create with
// the same key succeeded, the handler returns that id and sets
// `Idempotency-Replayed: true`.
package handlers

import (
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/services"
)

// CreateProfileRequest is the JSON payload for creating a profile.
// Dates use the YYYY-MM-DD form.
type CreateProfileRequest struct {
	Name           string      `json:"name" example:"Ana"`
	Email          string      `json:"email" example:"ana@example.com"`
	LastPeriodDate *civil.Date `json:"last_period_date" swaggertype:"string" example:"2024-01-01"`
	DueDate        *civil.Date `json:"due_date" swaggertype:"string" example:"2024-10-07"`
}

// Validate checks required fields.
func (r CreateProfileRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return services.Validation(services.MsgNameRequired)
	}
	if strings.TrimSpace(r.Email) == "" {
		return services.Validation(services.MsgEmailRequired)
	}
	return nil
}

// CreateProfile godoc
// @ID          createProfile
// @Summary     Create a mother profile
// @Description Stores a profile. When due_date is omitted and last_period_date is given, the due date is estimated as LMP + 280 days.
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body  body  handlers.CreateProfileRequest  true  "Profile payload"
// @Success     200  {object}  handlers.CreatedResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     422  {object}  handlers.ErrorResponse  "Invalid fields"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /profile [post]
func (h *Handlers) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if !bindBody(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		failFrom(c, err, http.StatusUnprocessableEntity)
		return
	}

	res, err := h.profileSvc.Create(c.Request.Context(), services.ProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		LastPeriodDate: req.LastPeriodDate,
		DueDate:        req.DueDate,
	}, idemKey(c))
	if err != nil {
		failFrom(c, err, http.StatusUnprocessableEntity)
		return
	}
	created(c, res)
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Get the newest profile for an email
// @Tags        Profile
// @Produce     json
// @Param       email  query  string  true  "Profile email"
// @Success     200  {object}  services.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Missing email"
// @Failure     404  {object}  handlers.ErrorResponse  "No profile"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.profileSvc.Latest(c.Request.Context(), c.Query("email"))
	if err != nil {
		failFrom(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, p)
}
