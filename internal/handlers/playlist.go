package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibetune/backend/internal/services"
)

type PlaylistHandler struct {
	playlistService services.PlaylistService
}

func NewPlaylistHandler(playlistService services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

func (ph *PlaylistHandler) Create(c *gin.Context) {
	var req struct {
		Name        string                `json:"name" binding:"required"`
		Description string                `json:"description"`
		Tracks      []services.TrackInput `json:"tracks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	playlist, err := ph.playlistService.Create(c.Request.Context(), req.Name, req.Description, req.Tracks)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "playlist_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

func (ph *PlaylistHandler) GetByID(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	playlist, err := ph.playlistService.GetByID(c.Request.Context(), playlistID)
	if err != nil {
		ph.respondPlaylistError(c, err, "playlist_lookup_failed")
		return
	}
	RespondOK(c, playlist)
}

func (ph *PlaylistHandler) GetMine(c *gin.Context) {
	playlists, err := ph.playlistService.GetMine(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "playlist_list_failed", err)
		return
	}
	RespondOK(c, playlists)
}

func (ph *PlaylistHandler) GetMyFavorites(c *gin.Context) {
	playlists, err := ph.playlistService.GetMyFavorites(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "favorite_list_failed", err)
		return
	}
	RespondOK(c, playlists)
}

func (ph *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	playlist, err := ph.playlistService.Update(c.Request.Context(), playlistID, req.Name, req.Description)
	if err != nil {
		ph.respondPlaylistError(c, err, "playlist_update_failed")
		return
	}
	RespondOK(c, playlist)
}

func (ph *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	if err := ph.playlistService.Delete(c.Request.Context(), playlistID); err != nil {
		ph.respondPlaylistError(c, err, "playlist_delete_failed")
		return
	}
	RespondOK(c, gin.H{"message": "playlist deleted"})
}

func (ph *PlaylistHandler) Favorite(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	if err := ph.playlistService.Favorite(c.Request.Context(), playlistID); err != nil {
		ph.respondPlaylistError(c, err, "favorite_failed")
		return
	}
	RespondOK(c, gin.H{"message": "playlist favorited"})
}

func (ph *PlaylistHandler) Unfavorite(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	if err := ph.playlistService.Unfavorite(c.Request.Context(), playlistID); err != nil {
		ph.respondPlaylistError(c, err, "unfavorite_failed")
		return
	}
	RespondOK(c, gin.H{"message": "playlist unfavorited"})
}

func (ph *PlaylistHandler) respondPlaylistError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "playlist_not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
