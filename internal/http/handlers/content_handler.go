// Content HTTP handlers.
//
// This file exposes the static catalog:
//   - GET /content/weeks?week=N
//   - GET /content/weeks/all
//   - GET /content/birth?mode=M
//   - GET /content/search?q=Q&limit=N
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/content"
	"github.com/tbourn/newmum-companion/internal/services"
	"github.com/tbourn/newmum-companion/internal/utils"
)

// WeeksResponse wraps every weekly stage.
type WeeksResponse struct {
	Items []content.WeeklyStage `json:"items"`
}

// SearchResponse wraps ranked catalog hits.
type SearchResponse struct {
	Items []services.SearchHit `json:"items"`
}

// GetWeek godoc
// @ID          getWeek
// @Summary     Weekly pregnancy content
// @Tags        Content
// @Produce     json
// @Param       week  query  int  true  "Gestational week (1-42)"  minimum(1)  maximum(42)
// @Success     200  {object}  content.WeeklyStage
// @Failure     400  {object}  handlers.ErrorResponse  "Week missing, not an integer or out of range"
// @Failure     404  {object}  handlers.ErrorResponse  "Content not found"
// @Router      /content/weeks [get]
func (h *Handlers) GetWeek(c *gin.Context) {
	w, err := utils.ParseInt(c.Query("week"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "week must be an integer")
		return
	}
	st, err := h.contentSvc.Week(w)
	if err != nil {
		failFrom(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, st)
}

// ListWeeks godoc
// @ID          listWeeks
// @Summary     All weekly pregnancy content
// @Tags        Content
// @Produce     json
// @Success     200  {object}  handlers.WeeksResponse
// @Router      /content/weeks/all [get]
func (h *Handlers) ListWeeks(c *gin.Context) {
	ok(c, http.StatusOK, WeeksResponse{Items: h.contentSvc.AllWeeks()})
}

// GetBirth godoc
// @ID          getBirth
// @Summary     Birth mode guidance
// @Description Mode is case-insensitive and defaults to vaginal.
// @Tags        Content
// @Produce     json
// @Param       mode  query  string  false  "vaginal or cesarean"  Enums(vaginal, cesarean)
// @Success     200  {object}  content.BirthModeContent
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown mode"
// @Router      /content/birth [get]
func (h *Handlers) GetBirth(c *gin.Context) {
	bc, err := h.contentSvc.Birth(c.Query("mode"))
	if err != nil {
		failFrom(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, bc)
}

// SearchContent godoc
// @ID          searchContent
// @Summary     Search weekly and birth content
// @Description Keyword search over the catalog, best match first.
// @Tags        Content
// @Produce     json
// @Param       q      query  string  true   "Search text"
// @Param       limit  query  int     false  "Max hits (default 5, max 20)"
// @Success     200  {object}  handlers.SearchResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing q or bad limit"
// @Router      /content/search [get]
func (h *Handlers) SearchContent(c *gin.Context) {
	limit, err := utils.OptionalInt(c.Query("limit"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "limit must be an integer")
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	hits, err := h.contentSvc.Search(c.Query("q"), n)
	if err != nil {
		failFrom(c, err, http.StatusBadRequest)
		return
	}
	ok(c, http.StatusOK, SearchResponse{Items: hits})
}
