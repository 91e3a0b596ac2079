package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vibetune/backend/internal/clients/suggester"
	"github.com/vibetune/backend/internal/services"
)

type fakeGenerationService struct {
	tracks     []services.GeneratedTrack
	err        error
	lastPrompt string
	lastQuiz   services.QuizRequest
}

func (f *fakeGenerationService) FromPrompt(ctx context.Context, prompt string) ([]services.GeneratedTrack, error) {
	f.lastPrompt = prompt
	return f.tracks, f.err
}

func (f *fakeGenerationService) FromQuiz(ctx context.Context, quiz services.QuizRequest) ([]services.GeneratedTrack, error) {
	f.lastQuiz = quiz
	return f.tracks, f.err
}

func generationRouter(svc services.GenerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewGenerationHandler(svc)
	router.POST("/ai/playlist-from-prompt", handler.FromPrompt)
	router.POST("/ai/playlist-from-quiz", handler.FromQuiz)
	return router
}

func TestFromPromptReturnsTracks(t *testing.T) {
	svc := &fakeGenerationService{tracks: []services.GeneratedTrack{
		{Title: "Song A", Artist: "Artist A", Listeners: 100},
	}}
	router := generationRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/playlist-from-prompt", strings.NewReader(`{"prompt":"rainy evening"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.lastPrompt != "rainy evening" {
		t.Fatalf("prompt not forwarded: %q", svc.lastPrompt)
	}
	var body struct {
		Tracks []services.GeneratedTrack `json:"tracks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Tracks) != 1 || body.Tracks[0].Title != "Song A" {
		t.Fatalf("unexpected tracks: %+v", body.Tracks)
	}
}

func TestFromPromptEmptyResultIsStillOK(t *testing.T) {
	router := generationRouter(&fakeGenerationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/playlist-from-prompt", strings.NewReader(`{"prompt":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestFromPromptRequiresPrompt(t *testing.T) {
	router := generationRouter(&fakeGenerationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/playlist-from-prompt", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
}

func TestFromQuizForwardsFields(t *testing.T) {
	svc := &fakeGenerationService{}
	router := generationRouter(svc)

	payload := `{"mood":"happy","activity":"working_out","preferred_genres":["pop"],"decade":"2010s","discovery_mode":"mix"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/playlist-from-quiz", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.lastQuiz.Mood != "happy" || svc.lastQuiz.DiscoveryMode != "mix" {
		t.Fatalf("quiz not forwarded: %+v", svc.lastQuiz)
	}
}

func TestGenerationErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unavailable", suggester.ErrUnavailable, http.StatusServiceUnavailable},
		{"malformed", suggester.ErrMalformed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := generationRouter(&fakeGenerationService{err: tc.err})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ai/playlist-from-prompt", strings.NewReader(`{"prompt":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, expected %d", rec.Code, tc.want)
			}
		})
	}
}
