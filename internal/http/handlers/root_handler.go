package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/domain"
)

// RootResponse is the liveness banner.
type RootResponse struct {
	Message string `json:"message" example:"New Mum Companion API is running"`
}

// SchemaResponse lists the logical collections.
type SchemaResponse struct {
	Collections []string `json:"collections" example:"motherprofile,note"`
}

// Root godoc
// @ID          root
// @Summary     Service banner
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.RootResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, RootResponse{Message: "New Mum Companion API is running"})
}

// Schema godoc
// @ID          schema
// @Summary     List logical collections
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.SchemaResponse
// @Router      /schema [get]
func (h *Handlers) Schema(c *gin.Context) {
	ok(c, http.StatusOK, SchemaResponse{Collections: domain.Collections()})
}
