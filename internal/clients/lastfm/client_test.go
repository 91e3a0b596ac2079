package lastfm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibetune/backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, "test-key", testLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestTopTracksByTagNormalizesArtistObject(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "tag.gettoptracks" {
			t.Errorf("method=%q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"track": []map[string]any{
					{
						"name":   "Mr. Brightside",
						"url":    "https://last.fm/t/1",
						"artist": map[string]any{"name": "The Killers"},
						"image":  []map[string]any{{"#text": "small.png", "size": "small"}, {"#text": "large.png", "size": "large"}},
					},
				},
			},
		})
	})

	tracks, err := c.TopTracksByTag(context.Background(), "rock", 5)
	if err != nil {
		t.Fatalf("TopTracksByTag: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	tr := tracks[0]
	if tr.Artist != "The Killers" {
		t.Errorf("artist=%q, want The Killers", tr.Artist)
	}
	if tr.SourceTag != "rock" {
		t.Errorf("source tag=%q, want rock", tr.SourceTag)
	}
	if tr.Image != "large.png" {
		t.Errorf("image=%q, want large.png", tr.Image)
	}
}

func TestSearchTracksNormalizesArtistString(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"trackmatches": map[string]any{
					"track": []map[string]any{
						{"name": "Yellow", "artist": "Coldplay", "url": "https://last.fm/t/2", "listeners": "123456"},
					},
				},
			},
		})
	})

	tracks, err := c.SearchTracks(context.Background(), "yellow", 10)
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Artist != "Coldplay" {
		t.Errorf("artist=%q, want Coldplay", tracks[0].Artist)
	}
	if tracks[0].Listeners != 123456 {
		t.Errorf("listeners=%d, want 123456", tracks[0].Listeners)
	}
}

func TestListenersParseFallbackToZero(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"track": []map[string]any{
					{"name": "Song", "artist": "Artist", "listeners": "not-a-number"},
				},
			},
		})
	})

	tracks, err := c.TopTracksByTag(context.Background(), "pop", 5)
	if err != nil {
		t.Fatalf("TopTracksByTag: %v", err)
	}
	if tracks[0].Listeners != 0 {
		t.Errorf("listeners=%d, want 0", tracks[0].Listeners)
	}
}

func TestAPIErrorSurfaced(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": 10, "message": "Invalid API key"})
	})

	if _, err := c.TopTracksByTag(context.Background(), "pop", 5); err == nil {
		t.Fatal("want error for api error payload")
	}
}

func TestTrackInfoNoMatch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	tr, err := c.TrackInfo(context.Background(), "Nope", "Nobody")
	if err != nil {
		t.Fatalf("TrackInfo: %v", err)
	}
	if tr != nil {
		t.Fatalf("want nil track, got %+v", tr)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "", testLogger(t)); err == nil {
		t.Fatal("want error for missing api key")
	}
}
