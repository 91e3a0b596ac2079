package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/vibetune/backend/internal/clients/lastfm"
	"github.com/vibetune/backend/internal/clients/suggester"
	"github.com/vibetune/backend/internal/logger"
)

type fakeSuggester struct {
	mode   suggester.Mode
	signal suggester.Signal
	err    error
}

func (f *fakeSuggester) Generate(ctx context.Context, prompt string) (suggester.Signal, error) {
	return f.signal, f.err
}

func (f *fakeSuggester) Mode() suggester.Mode { return f.mode }

type fakeCatalog struct {
	mu       sync.Mutex
	byTag    map[string][]lastfm.Track
	failTags map[string]error
	tagCalls []string
	infoOf   map[string]*lastfm.Track
}

func (f *fakeCatalog) TopTracksByTag(ctx context.Context, tag string, limit int) ([]lastfm.Track, error) {
	f.mu.Lock()
	f.tagCalls = append(f.tagCalls, tag)
	f.mu.Unlock()
	if err := f.failTags[tag]; err != nil {
		return nil, err
	}
	tracks := make([]lastfm.Track, 0, len(f.byTag[tag]))
	for _, tr := range f.byTag[tag] {
		tr.SourceTag = tag
		tracks = append(tracks, tr)
	}
	return tracks, nil
}

func (f *fakeCatalog) TrackInfo(ctx context.Context, title, artist string) (*lastfm.Track, error) {
	if f.infoOf == nil {
		return nil, nil
	}
	return f.infoOf[title], nil
}

func descriptorSignal(tags ...string) suggester.Signal {
	return suggester.Signal{Descriptors: &suggester.Descriptors{Tags: tags}}
}

func newTestService(t *testing.T, sg *fakeSuggester, cat *fakeCatalog, size int) GenerationService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewGenerationService(log, sg, cat, nil, nil, size)
}

func TestGenerateRanksByTagOverlap(t *testing.T) {
	// "Shared" appears under two tags, "Loner" under one but with far more
	// listeners. Overlap must win.
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{
		"dance": {
			{Name: "Shared", Artist: "A", Listeners: 10},
			{Name: "Loner", Artist: "B", Listeners: 999999},
		},
		"party": {
			{Name: "Shared", Artist: "A", Listeners: 10},
		},
		"upbeat": {
			{Name: "Third", Artist: "C", Listeners: 5},
		},
	}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("energetic")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "pump me up")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) == 0 {
		t.Fatal("expected tracks")
	}
	if tracks[0].Title != "Shared" {
		t.Fatalf("expected Shared ranked first, got %q", tracks[0].Title)
	}
	if tracks[1].Title != "Loner" {
		t.Fatalf("expected Loner second on listeners, got %q", tracks[1].Title)
	}
}

func TestGenerateAbsorbsFailedTagFetches(t *testing.T) {
	// One of the mapped tags fails outright. The surviving tags must still
	// rank and return, with no error and no retry.
	cat := &fakeCatalog{
		byTag: map[string][]lastfm.Track{
			"party":  {{Name: "Survivor", Artist: "A", Listeners: 50}},
			"upbeat": {{Name: "Survivor", Artist: "A", Listeners: 50}, {Name: "Solo", Artist: "B", Listeners: 80}},
		},
		failTags: map[string]error{
			"dance":      errors.New("catalog timeout"),
			"electropop": errors.New("catalog timeout"),
		},
	}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("energetic")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "pump me up")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks from surviving tags, got %d: %+v", len(tracks), tracks)
	}
	if tracks[0].Title != "Survivor" {
		t.Fatalf("expected two-tag track ranked first, got %q", tracks[0].Title)
	}
	// energetic maps to 4 tags; a non-empty pool means no retry fetches.
	if len(cat.tagCalls) != 4 {
		t.Fatalf("expected 4 tag fetches, got %d: %v", len(cat.tagCalls), cat.tagCalls)
	}
}

func TestGenerateSortsEqualScoresByListeners(t *testing.T) {
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{
		"happy": {
			{Name: "Small", Artist: "A", Listeners: 10},
			{Name: "Big", Artist: "B", Listeners: 500},
			{Name: "Mid", Artist: "C", Listeners: 100},
		},
	}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("happy")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "smile")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	got := []string{tracks[0].Title, tracks[1].Title, tracks[2].Title}
	want := []string{"Big", "Mid", "Small"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestGenerateTruncatesToPlaylistSize(t *testing.T) {
	var pool []lastfm.Track
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		pool = append(pool, lastfm.Track{Name: name, Artist: "X", Listeners: 1})
	}
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{"happy": pool}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("happy")}

	svc := newTestService(t, sg, cat, 3)
	tracks, err := svc.FromPrompt(context.Background(), "smile")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
}

func TestGenerateReturnsAllWhenPoolIsSmall(t *testing.T) {
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{
		"happy": {{Name: "Only", Artist: "X", Listeners: 1}},
	}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("happy")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "smile")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
}

func TestGenerateRetriesWithGenericTagsExactlyOnce(t *testing.T) {
	// Mapped tags yield nothing; generic retry tags yield one track.
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{
		"rock": {{Name: "Comeback", Artist: "X", Listeners: 7}},
	}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("sad")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "gray day")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Comeback" {
		t.Fatalf("expected retry result, got %+v", tracks)
	}
	// sad maps to 2 tags, the retry set adds 5 calls.
	if len(cat.tagCalls) != 7 {
		t.Fatalf("expected 7 tag fetches, got %d: %v", len(cat.tagCalls), cat.tagCalls)
	}
}

func TestGenerateEmptyAfterRetryIsNotAnError(t *testing.T) {
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("happy")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "anything")
	if err != nil {
		t.Fatalf("expected success with empty result, got %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %d", len(tracks))
	}
}

func TestGenerateFallsBackWhenNoDescriptorMaps(t *testing.T) {
	cat := &fakeCatalog{byTag: map[string][]lastfm.Track{
		"summer": {{Name: "Heat", Artist: "X", Listeners: 3}},
	}}
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, signal: descriptorSignal("unmappable", "nonsense")}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "???")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Heat" {
		t.Fatalf("expected fallback-tag result, got %+v", tracks)
	}
	for _, tag := range []string{"happy", "pop", "dance", "party", "summer"} {
		found := false
		for _, called := range cat.tagCalls[:5] {
			if called == tag {
				found = true
			}
		}
		if !found {
			t.Fatalf("fallback tag %q was not fetched: %v", tag, cat.tagCalls)
		}
	}
}

func TestGenerateSongsModeKeepsUnresolvedSuggestions(t *testing.T) {
	cat := &fakeCatalog{infoOf: map[string]*lastfm.Track{
		"Known": {Name: "Known", Artist: "A", URL: "https://last.fm/known", Listeners: 42},
	}}
	sg := &fakeSuggester{
		mode: suggester.ModeSongs,
		signal: suggester.Signal{Songs: []suggester.SongSuggestion{
			{Title: "Known", Artist: "A"},
			{Title: "Obscure", Artist: "B"},
		}},
	}

	svc := newTestService(t, sg, cat, 10)
	tracks, err := svc.FromPrompt(context.Background(), "road trip")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected both suggestions kept, got %d", len(tracks))
	}
	if tracks[0].URL != "https://last.fm/known" || tracks[0].Listeners != 42 {
		t.Fatalf("expected first suggestion enriched, got %+v", tracks[0])
	}
	if tracks[1].Title != "Obscure" || tracks[1].URL != "" {
		t.Fatalf("expected unresolved suggestion kept bare, got %+v", tracks[1])
	}
}

func TestGenerateSurfacesSuggesterFailure(t *testing.T) {
	sg := &fakeSuggester{mode: suggester.ModeDescriptors, err: suggester.ErrUnavailable}
	svc := newTestService(t, sg, &fakeCatalog{}, 10)

	_, err := svc.FromPrompt(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildQuizPrompt(QuizRequest{
		Mood:            "happy",
		Activity:        "working_out",
		PreferredGenres: []string{"pop", "rock"},
		Decade:          "2010s",
		DiscoveryMode:   "popular",
	})
	for _, want := range []string{"happy", "working out", "pop, rock", "2010s", "popular"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %s", want, prompt)
		}
	}
}
