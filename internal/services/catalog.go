package services

import (
	"context"

	"github.com/vibetune/backend/internal/clients/lastfm"
	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/normalization"
)

// CatalogService exposes the public browse and search surface of the music
// catalog. It is a thin layer over the Last.fm client.
type CatalogService interface {
	TopTracks(ctx context.Context, limit int) ([]lastfm.Track, error)
	TopArtists(ctx context.Context, limit int) ([]lastfm.Artist, error)
	Search(ctx context.Context, query string, limit int) ([]lastfm.Track, error)
	GenreTracks(ctx context.Context, genre string, limit int) ([]lastfm.Track, error)
}

type catalogService struct {
	log     *logger.Logger
	catalog *lastfm.Client
}

func NewCatalogService(log *logger.Logger, catalog *lastfm.Client) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{log: serviceLog, catalog: catalog}
}

func (cs *catalogService) TopTracks(ctx context.Context, limit int) ([]lastfm.Track, error) {
	return cs.catalog.ChartTopTracks(ctx, clampLimit(limit))
}

func (cs *catalogService) TopArtists(ctx context.Context, limit int) ([]lastfm.Artist, error) {
	return cs.catalog.ChartTopArtists(ctx, clampLimit(limit))
}

func (cs *catalogService) Search(ctx context.Context, query string, limit int) ([]lastfm.Track, error) {
	return cs.catalog.SearchTracks(ctx, query, clampLimit(limit))
}

func (cs *catalogService) GenreTracks(ctx context.Context, genre string, limit int) ([]lastfm.Track, error) {
	return cs.catalog.TopTracksByTag(ctx, normalization.ParseInputString(genre), clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
