package suggester

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func newTestClient(t *testing.T, mode Mode, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, mode, 5*time.Second, testLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateSongsMode(t *testing.T) {
	c := newTestClient(t, ModeSongs, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		w.Write([]byte(`[{"title":"Fix You","artist":"Coldplay"},{"title":"Someone Like You","artist":"Adele"}]`))
	})

	sig, err := c.Generate(context.Background(), "sad songs")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sig.Songs) != 2 {
		t.Fatalf("got %d songs, want 2", len(sig.Songs))
	}
	if sig.Descriptors != nil {
		t.Fatal("descriptors should be nil in songs mode")
	}
	if sig.Songs[0].Title != "Fix You" || sig.Songs[0].Artist != "Coldplay" {
		t.Errorf("unexpected first suggestion: %+v", sig.Songs[0])
	}
}

func TestGenerateDescriptorsMode(t *testing.T) {
	c := newTestClient(t, ModeDescriptors, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":["rock"],"moods":["energetic"],"tags":["workout"]}`))
	})

	sig, err := c.Generate(context.Background(), "pump me up")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sig.Descriptors == nil {
		t.Fatal("want descriptors")
	}
	all := sig.Descriptors.All()
	want := []string{"rock", "energetic", "workout"}
	if len(all) != len(want) {
		t.Fatalf("All()=%v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("All()=%v, want %v", all, want)
		}
	}
}

func TestGenerateDescriptorsKeywordsAlias(t *testing.T) {
	c := newTestClient(t, ModeDescriptors, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moods":["chill"],"keywords":["rainy day"]}`))
	})

	sig, err := c.Generate(context.Background(), "rainy day songs")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sig.Descriptors.Tags) != 1 || sig.Descriptors.Tags[0] != "rainy day" {
		t.Fatalf("tags=%v, want [rainy day]", sig.Descriptors.Tags)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	c := newTestClient(t, ModeSongs, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
}

func TestGenerateSuggestionMissingArtist(t *testing.T) {
	c := newTestClient(t, ModeSongs, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Orphan Song","artist":""}]`))
	})

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	c := newTestClient(t, ModeDescriptors, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	log := testLogger(t)
	if _, err := NewClient("", ModeSongs, 0, log); err == nil {
		t.Fatal("want error for empty base URL")
	}
	if _, err := NewClient("http://ai-agent:8003", Mode("detect"), 0, log); err == nil {
		t.Fatal("want error for unknown mode")
	}
}
