// Package deezer looks up cover art. Lookups are best-effort: any failure
// yields an empty URL, never an error, since artwork is cosmetic.
package deezer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/vibetune/backend/internal/logger"
)

const DefaultBaseURL = "https://api.deezer.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With("client", "deezer"),
	}
}

// TrackImage returns the album cover for the best-match track, falling back
// to the artist picture, or "" when neither exists.
func (c *Client) TrackImage(ctx context.Context, query string) string {
	var payload struct {
		Data []struct {
			Album *struct {
				CoverMedium string `json:"cover_medium"`
			} `json:"album"`
			Artist *struct {
				PictureMedium string `json:"picture_medium"`
			} `json:"artist"`
		} `json:"data"`
	}
	if !c.get(ctx, "/search", query, &payload) || len(payload.Data) == 0 {
		return ""
	}
	first := payload.Data[0]
	if first.Album != nil && first.Album.CoverMedium != "" {
		return first.Album.CoverMedium
	}
	if first.Artist != nil && first.Artist.PictureMedium != "" {
		return first.Artist.PictureMedium
	}
	return ""
}

// ArtistImage returns the best-match artist picture, or "".
func (c *Client) ArtistImage(ctx context.Context, artistName string) string {
	var payload struct {
		Data []struct {
			PictureMedium string `json:"picture_medium"`
		} `json:"data"`
	}
	if !c.get(ctx, "/search/artist", artistName, &payload) || len(payload.Data) == 0 {
		return ""
	}
	return payload.Data[0].PictureMedium
}

func (c *Client) get(ctx context.Context, path, query string, out any) bool {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Debug("Failed to build deezer request", "error", err)
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("Deezer request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("Deezer returned non-200", "status", resp.StatusCode)
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Debug("Failed to decode deezer response", "error", err)
		return false
	}
	return true
}
