package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibetune/backend/internal/services"
)

type TrackHandler struct {
	playlistService services.PlaylistService
	videoService    services.VideoService
}

func NewTrackHandler(playlistService services.PlaylistService, videoService services.VideoService) *TrackHandler {
	return &TrackHandler{playlistService: playlistService, videoService: videoService}
}

func (th *TrackHandler) Add(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	var req services.TrackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	track, err := th.playlistService.AddTrack(c.Request.Context(), playlistID, req)
	if err != nil {
		th.respondTrackError(c, err, "track_add_failed")
		return
	}
	c.JSON(http.StatusCreated, track)
}

func (th *TrackHandler) Remove(c *gin.Context) {
	playlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid playlist id"))
		return
	}
	trackID, err := uuid.Parse(c.Param("trackId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid track id"))
		return
	}
	if err := th.playlistService.RemoveTrack(c.Request.Context(), playlistID, trackID); err != nil {
		th.respondTrackError(c, err, "track_remove_failed")
		return
	}
	RespondOK(c, gin.H{"message": "track removed"})
}

func (th *TrackHandler) YoutubeTrack(c *gin.Context) {
	title := c.Query("track_name")
	artist := c.Query("artist_name")
	if title == "" {
		RespondError(c, http.StatusBadRequest, "missing_track_name", errors.New("track_name is required"))
		return
	}
	videoID, err := th.videoService.FindVideoID(c.Request.Context(), title, artist)
	if err != nil {
		if errors.Is(err, services.ErrNoVideo) {
			RespondError(c, http.StatusNotFound, "video_not_found", err)
			return
		}
		RespondError(c, http.StatusBadGateway, "video_lookup_failed", err)
		return
	}
	RespondOK(c, gin.H{"video_id": videoID})
}

func (th *TrackHandler) respondTrackError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
