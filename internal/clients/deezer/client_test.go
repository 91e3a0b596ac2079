package deezer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibetune/backend/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewClient(srv.URL, log)
}

func TestTrackImagePrefersAlbumCover(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"album":{"cover_medium":"cover.jpg"},"artist":{"picture_medium":"artist.jpg"}}]}`))
	})

	if got := c.TrackImage(context.Background(), "Coldplay Fix You"); got != "cover.jpg" {
		t.Errorf("TrackImage=%q, want cover.jpg", got)
	}
}

func TestTrackImageFallsBackToArtistPicture(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"artist":{"picture_medium":"artist.jpg"}}]}`))
	})

	if got := c.TrackImage(context.Background(), "Coldplay Fix You"); got != "artist.jpg" {
		t.Errorf("TrackImage=%q, want artist.jpg", got)
	}
}

func TestTrackImageEmptyOnFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	if got := c.TrackImage(context.Background(), "anything"); got != "" {
		t.Errorf("TrackImage=%q, want empty", got)
	}
}

func TestArtistImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"picture_medium":"adele.jpg"}]}`))
	})

	if got := c.ArtistImage(context.Background(), "Adele"); got != "adele.jpg" {
		t.Errorf("ArtistImage=%q, want adele.jpg", got)
	}
}
