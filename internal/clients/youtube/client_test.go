package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
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
	c, err := NewClient(srv.URL, "test-key", log)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestSearchVideoID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "video" {
			t.Errorf("type=%q", got)
		}
		w.Write([]byte(`{"items":[{"id":{"videoId":"dQw4w9WgXcQ"}}]}`))
	})

	id, err := c.SearchVideoID(context.Background(), "Coldplay Fix You")
	if err != nil {
		t.Fatalf("SearchVideoID: %v", err)
	}
	if id != "dQw4w9WgXcQ" {
		t.Errorf("id=%q", id)
	}
}

func TestSearchVideoIDNoMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	id, err := c.SearchVideoID(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchVideoID: %v", err)
	}
	if id != "" {
		t.Errorf("id=%q, want empty", id)
	}
}

func TestSearchHitsSearchEndpoint(t *testing.T) {
	defaultPath, err := url.Parse(DefaultBaseURL)
	if err != nil {
		t.Fatalf("parse DefaultBaseURL: %v", err)
	}
	if !strings.HasSuffix(defaultPath.Path, "/search") {
		t.Fatalf("DefaultBaseURL path %q does not end in /search", defaultPath.Path)
	}

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(srv.Close)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c, err := NewClient(srv.URL+defaultPath.Path, "test-key", log)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.SearchVideoID(context.Background(), "anything"); err != nil {
		t.Fatalf("SearchVideoID: %v", err)
	}
	if gotPath != defaultPath.Path {
		t.Fatalf("request hit %q, want %q", gotPath, defaultPath.Path)
	}
}

func TestSearchVideoIDQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	if _, err := c.SearchVideoID(context.Background(), "anything"); err == nil {
		t.Fatal("want error for 403")
	}
}
