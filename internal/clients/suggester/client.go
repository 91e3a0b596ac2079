// Package suggester is the client for the AI agent's text-generation
// endpoint. Depending on how the agent is deployed it answers a prompt with
// either a list of song suggestions or a bundle of mood descriptors; the
// active shape is fixed by configuration, never sniffed per request.
package suggester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/vibetune/backend/internal/logger"
)

// Mode selects which response shape the deployed agent produces.
type Mode string

const (
	ModeSongs       Mode = "songs"
	ModeDescriptors Mode = "descriptors"
)

var (
	// ErrUnavailable covers network failures, timeouts and non-2xx replies.
	ErrUnavailable = errors.New("suggester: upstream unavailable")
	// ErrMalformed covers replies that are not the configured shape.
	ErrMalformed = errors.New("suggester: malformed response")
)

// SongSuggestion is one direct title/artist suggestion from the agent.
type SongSuggestion struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Descriptors is the agent's mood-descriptor bundle.
type Descriptors struct {
	Genres []string `json:"genres"`
	Moods  []string `json:"moods"`
	Tags   []string `json:"tags"`
}

// Signal is the extraction result. Exactly one of Songs or Descriptors is
// populated, matching the client's configured mode.
type Signal struct {
	Songs       []SongSuggestion
	Descriptors *Descriptors
}

// All flattens a descriptor bundle into one list, genres first.
func (d *Descriptors) All() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.Genres)+len(d.Moods)+len(d.Tags))
	out = append(out, d.Genres...)
	out = append(out, d.Moods...)
	out = append(out, d.Tags...)
	return out
}

type Client struct {
	baseURL    string
	mode       Mode
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *logger.Logger
}

func NewClient(baseURL string, mode Mode, timeout time.Duration, log *logger.Logger) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("suggester: missing base URL")
	}
	switch mode {
	case ModeSongs, ModeDescriptors:
	default:
		return nil, fmt.Errorf("suggester: unknown mode %q", mode)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "suggester",
		Timeout: 30 * time.Second,
	})
	return &Client{
		baseURL:    baseURL,
		mode:       mode,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		log:        log.With("client", "suggester"),
	}, nil
}

func (c *Client) Mode() Mode { return c.mode }

// Generate sends the prompt and decodes the reply per the configured mode.
func (c *Client) Generate(ctx context.Context, prompt string) (Signal, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return Signal{}, fmt.Errorf("suggester: marshal request: %w", err)
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Signal{}, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		return Signal{}, err
	}

	switch c.mode {
	case ModeSongs:
		return decodeSongs(raw)
	default:
		return decodeDescriptors(raw)
	}
}

func decodeSongs(raw []byte) (Signal, error) {
	var songs []SongSuggestion
	if err := json.Unmarshal(raw, &songs); err != nil {
		return Signal{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, s := range songs {
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Artist) == "" {
			return Signal{}, fmt.Errorf("%w: suggestion missing title or artist", ErrMalformed)
		}
	}
	return Signal{Songs: songs}, nil
}

func decodeDescriptors(raw []byte) (Signal, error) {
	var wire struct {
		Genres   []string `json:"genres"`
		Moods    []string `json:"moods"`
		Tags     []string `json:"tags"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Signal{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	d := &Descriptors{
		Genres: wire.Genres,
		Moods:  wire.Moods,
		Tags:   wire.Tags,
	}
	// Some agent builds say "keywords" where others say "tags".
	if len(d.Tags) == 0 {
		d.Tags = wire.Keywords
	}
	return Signal{Descriptors: d}, nil
}
