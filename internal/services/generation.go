package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/vibetune/backend/internal/clients/lastfm"
	"github.com/vibetune/backend/internal/clients/suggester"
	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/repos"
	"github.com/vibetune/backend/internal/requestdata"
	"github.com/vibetune/backend/internal/tagmap"
	"github.com/vibetune/backend/internal/types"
)

// poolDepthFactor is how many tracks are fetched per tag relative to the
// requested playlist size, so scoring has a deep enough pool to work with.
const poolDepthFactor = 5

// SuggestClient is the slice of the suggester client the pipeline needs.
type SuggestClient interface {
	Generate(ctx context.Context, prompt string) (suggester.Signal, error)
	Mode() suggester.Mode
}

// CatalogClient is the slice of the Last.fm client the pipeline needs.
type CatalogClient interface {
	TopTracksByTag(ctx context.Context, tag string, limit int) ([]lastfm.Track, error)
	TrackInfo(ctx context.Context, title, artist string) (*lastfm.Track, error)
}

// ImageClient supplies cover art for tracks the catalog returned bare.
type ImageClient interface {
	TrackImage(ctx context.Context, query string) string
}

// QuizRequest carries structured quiz answers from the generate page.
type QuizRequest struct {
	Mood            string   `json:"mood"`
	Activity        string   `json:"activity"`
	PreferredGenres []string `json:"preferred_genres"`
	Decade          string   `json:"decade"`
	DiscoveryMode   string   `json:"discovery_mode"`
}

// GeneratedTrack is one entry of a generated playlist as returned to clients.
type GeneratedTrack struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	URL       string `json:"url,omitempty"`
	Listeners int    `json:"listeners"`
	Image     string `json:"image,omitempty"`
}

type GenerationService interface {
	FromPrompt(ctx context.Context, prompt string) ([]GeneratedTrack, error)
	FromQuiz(ctx context.Context, quiz QuizRequest) ([]GeneratedTrack, error)
}

type generationService struct {
	log          *logger.Logger
	suggest      SuggestClient
	catalog      CatalogClient
	images       ImageClient
	logRepo      repos.GenerationLogRepo
	playlistSize int
}

func NewGenerationService(
	log *logger.Logger,
	suggest SuggestClient,
	catalog CatalogClient,
	images ImageClient,
	logRepo repos.GenerationLogRepo,
	playlistSize int,
) GenerationService {
	serviceLog := log.With("service", "GenerationService")
	if playlistSize <= 0 {
		playlistSize = 10
	}
	return &generationService{
		log:          serviceLog,
		suggest:      suggest,
		catalog:      catalog,
		images:       images,
		logRepo:      logRepo,
		playlistSize: playlistSize,
	}
}

// BuildQuizPrompt folds quiz answers into one natural-language prompt.
func BuildQuizPrompt(quiz QuizRequest) string {
	var parts []string
	if quiz.Mood != "" {
		parts = append(parts, fmt.Sprintf("I am feeling %s", quiz.Mood))
	}
	if quiz.Activity != "" {
		parts = append(parts, fmt.Sprintf("while %s", strings.ReplaceAll(quiz.Activity, "_", " ")))
	}
	if len(quiz.PreferredGenres) > 0 {
		parts = append(parts, fmt.Sprintf("and I like %s music", strings.Join(quiz.PreferredGenres, ", ")))
	}
	if quiz.Decade != "" {
		parts = append(parts, fmt.Sprintf("preferably from the %s", quiz.Decade))
	}
	prompt := "Suggest songs for a playlist. " + strings.Join(parts, " ") + "."
	switch quiz.DiscoveryMode {
	case "popular":
		prompt += " Focus on popular well-known hits."
	case "fresh":
		prompt += " Focus on lesser-known fresh finds."
	case "mix":
		prompt += " Mix popular hits with fresh finds."
	}
	return prompt
}

func (gs *generationService) FromPrompt(ctx context.Context, prompt string) ([]GeneratedTrack, error) {
	return gs.generate(ctx, prompt)
}

func (gs *generationService) FromQuiz(ctx context.Context, quiz QuizRequest) ([]GeneratedTrack, error) {
	return gs.generate(ctx, BuildQuizPrompt(quiz))
}

func (gs *generationService) generate(ctx context.Context, prompt string) ([]GeneratedTrack, error) {
	signal, err := gs.suggest.Generate(ctx, prompt)
	if err != nil {
		gs.recordLog(ctx, prompt, false, 0, err, nil)
		return nil, err
	}

	var (
		tracks []GeneratedTrack
		detail map[string]any
	)
	if signal.Descriptors != nil {
		tracks, detail = gs.fromDescriptors(ctx, signal.Descriptors)
	} else {
		tracks = gs.fromSongList(ctx, signal.Songs)
		detail = map[string]any{"suggestions": len(signal.Songs)}
	}

	gs.enrichImages(ctx, tracks)
	gs.recordLog(ctx, prompt, true, len(tracks), nil, detail)
	return tracks, nil
}

// fromSongList resolves each direct suggestion against the catalog. A failed
// lookup keeps the bare suggestion rather than dropping it.
func (gs *generationService) fromSongList(ctx context.Context, songs []suggester.SongSuggestion) []GeneratedTrack {
	tracks := make([]GeneratedTrack, 0, len(songs))
	for _, song := range songs {
		gt := GeneratedTrack{Title: song.Title, Artist: song.Artist}
		info, err := gs.catalog.TrackInfo(ctx, song.Title, song.Artist)
		if err != nil {
			gs.log.Warn("Catalog lookup failed for suggestion", "title", song.Title, "error", err)
		} else if info != nil {
			gt.URL = info.URL
			gt.Listeners = info.Listeners
			gt.Image = info.Image
		}
		tracks = append(tracks, gt)
	}
	return tracks
}

func (gs *generationService) fromDescriptors(ctx context.Context, d *suggester.Descriptors) ([]GeneratedTrack, map[string]any) {
	tags := tagmap.Map(d.All())
	fallbackUsed := false
	if len(tags) == 0 {
		tags = tagmap.FallbackTags
		fallbackUsed = true
	}

	ranked := gs.fetchAndRank(ctx, tags, gs.playlistSize)
	retried := false
	if len(ranked) == 0 {
		retried = true
		ranked = gs.fetchAndRank(ctx, tagmap.GenericRetryTags, gs.playlistSize)
	}

	tracks := make([]GeneratedTrack, 0, len(ranked))
	for _, st := range ranked {
		tracks = append(tracks, GeneratedTrack{
			Title:     st.track.Name,
			Artist:    st.track.Artist,
			URL:       st.track.URL,
			Listeners: st.track.Listeners,
			Image:     st.track.Image,
		})
	}
	detail := map[string]any{
		"tags":          tags,
		"fallback_tags": fallbackUsed,
		"retried":       retried,
	}
	return tracks, detail
}

type scoredTrack struct {
	track lastfm.Track
	score int
	tags  map[string]struct{}
}

// fetchAndRank fans out one catalog query per tag, merges the per-tag pools,
// scores each distinct (name, artist) pair by how many tags returned it, and
// returns up to n tracks best-first.
func (gs *generationService) fetchAndRank(ctx context.Context, tags []string, n int) []*scoredTrack {
	perTag := make([][]lastfm.Track, len(tags))

	g, gctx := errgroup.WithContext(ctx)
	for i, tag := range tags {
		g.Go(func() error {
			found, err := gs.catalog.TopTracksByTag(gctx, tag, n*poolDepthFactor)
			if err != nil {
				gs.log.Warn("Tag fetch failed, skipping tag", "tag", tag, "error", err)
				return nil
			}
			perTag[i] = found
			return nil
		})
	}
	_ = g.Wait()

	type key struct {
		name   string
		artist string
	}
	grouped := make(map[key]*scoredTrack)
	var order []key
	for i := range perTag {
		for _, tr := range perTag[i] {
			k := key{name: tr.Name, artist: tr.Artist}
			st, ok := grouped[k]
			if !ok {
				st = &scoredTrack{track: tr, tags: make(map[string]struct{})}
				grouped[k] = st
				order = append(order, k)
			}
			if _, seen := st.tags[tr.SourceTag]; !seen {
				st.tags[tr.SourceTag] = struct{}{}
				st.score++
			}
			// Later duplicates can fill fields the first instance lacked.
			if st.track.URL == "" {
				st.track.URL = tr.URL
			}
			if st.track.Image == "" {
				st.track.Image = tr.Image
			}
			if st.track.Listeners == 0 {
				st.track.Listeners = tr.Listeners
			}
		}
	}

	pool := make([]*scoredTrack, 0, len(order))
	for _, k := range order {
		pool = append(pool, grouped[k])
	}
	sort.SliceStable(pool, func(a, b int) bool {
		if pool[a].score != pool[b].score {
			return pool[a].score > pool[b].score
		}
		return pool[a].track.Listeners > pool[b].track.Listeners
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

func (gs *generationService) enrichImages(ctx context.Context, tracks []GeneratedTrack) {
	if gs.images == nil {
		return
	}
	for i := range tracks {
		if tracks[i].Image != "" {
			continue
		}
		tracks[i].Image = gs.images.TrackImage(ctx, tracks[i].Title+" "+tracks[i].Artist)
	}
}

func (gs *generationService) recordLog(ctx context.Context, prompt string, success bool, trackCount int, genErr error, detail map[string]any) {
	if gs.logRepo == nil {
		return
	}
	entry := &types.GenerationLog{
		ID:         uuid.New(),
		Prompt:     prompt,
		Mode:       string(gs.suggest.Mode()),
		Success:    success,
		TrackCount: trackCount,
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		userID := rd.UserID
		entry.UserID = &userID
	}
	if genErr != nil {
		entry.Error = genErr.Error()
	}
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			entry.Detail = datatypes.JSON(raw)
		}
	}
	if _, err := gs.logRepo.Create(ctx, nil, []*types.GenerationLog{entry}); err != nil {
		gs.log.Warn("Failed to record generation log", "error", err)
	}
}
