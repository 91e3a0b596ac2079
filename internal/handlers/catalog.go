package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibetune/backend/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) TopTracks(c *gin.Context) {
	tracks, err := ch.catalogService.TopTracks(c.Request.Context(), queryLimit(c))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", err)
		return
	}
	RespondOK(c, tracks)
}

func (ch *CatalogHandler) TopArtists(c *gin.Context) {
	artists, err := ch.catalogService.TopArtists(c.Request.Context(), queryLimit(c))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", err)
		return
	}
	RespondOK(c, artists)
}

func (ch *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondError(c, http.StatusBadRequest, "missing_query", errors.New("q is required"))
		return
	}
	tracks, err := ch.catalogService.Search(c.Request.Context(), query, queryLimit(c))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", err)
		return
	}
	RespondOK(c, tracks)
}

func (ch *CatalogHandler) GenreTracks(c *gin.Context) {
	genre := c.Param("genre")
	tracks, err := ch.catalogService.GenreTracks(c.Request.Context(), genre, queryLimit(c))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "catalog_unavailable", err)
		return
	}
	RespondOK(c, tracks)
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		return 20
	}
	return limit
}
