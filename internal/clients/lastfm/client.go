// Package lastfm is a client for the Last.fm web API. It covers the tag,
// chart, search and track-info endpoints the backend depends on and
// normalizes the API's loose response shapes at ingestion.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibetune/backend/internal/logger"
)

const DefaultBaseURL = "http://ws.audioscrobbler.com/2.0/"

// Track is a catalog track normalized from any of the Last.fm endpoints.
// Listeners is 0 when the endpoint does not report a count or the count
// fails to parse. SourceTag is set by the caller for tag queries.
type Track struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	URL       string `json:"url,omitempty"`
	Listeners int    `json:"listeners"`
	Image     string `json:"image,omitempty"`
	SourceTag string `json:"-"`
}

type Artist struct {
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Listeners int    `json:"listeners"`
	Image     string `json:"image,omitempty"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

func NewClient(baseURL, apiKey string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("lastfm: missing API key")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		log:        log.With("client", "lastfm"),
	}, nil
}

// TopTracksByTag fetches tag.gettoptracks. Every returned track carries the
// queried tag as its SourceTag.
func (c *Client) TopTracksByTag(ctx context.Context, tag string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("method", "tag.gettoptracks")
	params.Set("tag", tag)
	params.Set("limit", fmt.Sprint(limit))

	var payload struct {
		Tracks struct {
			Track []wireTrack `json:"track"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(payload.Tracks.Track))
	for _, wt := range payload.Tracks.Track {
		t := wt.normalize()
		t.SourceTag = tag
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// ChartTopTracks fetches chart.gettoptracks.
func (c *Client) ChartTopTracks(ctx context.Context, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("method", "chart.gettoptracks")
	params.Set("limit", fmt.Sprint(limit))

	var payload struct {
		Tracks struct {
			Track []wireTrack `json:"track"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(payload.Tracks.Track))
	for _, wt := range payload.Tracks.Track {
		tracks = append(tracks, wt.normalize())
	}
	return tracks, nil
}

// ChartTopArtists fetches chart.gettopartists.
func (c *Client) ChartTopArtists(ctx context.Context, limit int) ([]Artist, error) {
	params := url.Values{}
	params.Set("method", "chart.gettopartists")
	params.Set("limit", fmt.Sprint(limit))

	var payload struct {
		Artists struct {
			Artist []wireArtistRecord `json:"artist"`
		} `json:"artists"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	artists := make([]Artist, 0, len(payload.Artists.Artist))
	for _, wa := range payload.Artists.Artist {
		artists = append(artists, Artist{
			Name:      wa.Name,
			URL:       wa.URL,
			Listeners: wa.Listeners.value(),
			Image:     wa.Image.best(),
		})
	}
	return artists, nil
}

// SearchTracks fetches track.search for a free-text query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("method", "track.search")
	params.Set("track", query)
	params.Set("limit", fmt.Sprint(limit))

	var payload struct {
		Results struct {
			TrackMatches struct {
				Track []wireTrack `json:"track"`
			} `json:"trackmatches"`
		} `json:"results"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(payload.Results.TrackMatches.Track))
	for _, wt := range payload.Results.TrackMatches.Track {
		tracks = append(tracks, wt.normalize())
	}
	return tracks, nil
}

// TrackInfo fetches track.getinfo for one title+artist pair. Returns
// (nil, nil) when Last.fm has no match.
func (c *Client) TrackInfo(ctx context.Context, title, artist string) (*Track, error) {
	params := url.Values{}
	params.Set("method", "track.getinfo")
	params.Set("track", title)
	params.Set("artist", artist)

	var payload struct {
		Track *struct {
			wireTrack
			Album *struct {
				Image wireImages `json:"image"`
			} `json:"album"`
		} `json:"track"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if payload.Track == nil {
		return nil, nil
	}
	t := payload.Track.normalize()
	if t.Image == "" && payload.Track.Album != nil {
		t.Image = payload.Track.Album.Image.best()
	}
	return &t, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("lastfm: rate limiter: %w", err)
	}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("lastfm: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lastfm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lastfm: unexpected status %d", resp.StatusCode)
	}

	var apiErr struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("lastfm: decode response: %w", err)
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != 0 {
		return fmt.Errorf("lastfm: api error %d: %s", apiErr.Error, apiErr.Message)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("lastfm: decode response: %w", err)
	}
	return nil
}
