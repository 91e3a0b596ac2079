// Package youtube looks up a playable video id for a track.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vibetune/backend/internal/logger"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3/search"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL, apiKey string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: missing API key")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With("client", "youtube"),
	}, nil
}

// SearchVideoID returns the best-match video id for a free-text query, or
// "" when YouTube has no match.
func (c *Client) SearchVideoID(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("maxResults", "1")
	params.Set("type", "video")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("youtube: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("youtube: invalid API key or quota exceeded")
	}

	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("youtube: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if payload.Error != nil && payload.Error.Message != "" {
			msg = payload.Error.Message
		}
		return "", fmt.Errorf("youtube: api error: %s", msg)
	}
	if len(payload.Items) == 0 {
		return "", nil
	}
	return payload.Items[0].ID.VideoID, nil
}
