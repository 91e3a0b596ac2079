package lastfm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// wireTrack mirrors the track records Last.fm returns. The artist field is a
// plain string on some endpoints and a {"name": ...} object on others; the
// listener count is a decimal string when present at all.
type wireTrack struct {
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Artist    wireArtist `json:"artist"`
	Listeners wireCount  `json:"listeners"`
	Image     wireImages `json:"image"`
}

func (wt wireTrack) normalize() Track {
	return Track{
		Name:      wt.Name,
		Artist:    wt.Artist.Name,
		URL:       wt.URL,
		Listeners: wt.Listeners.value(),
		Image:     wt.Image.best(),
	}
}

type wireArtist struct {
	Name string
}

func (a *wireArtist) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		return json.Unmarshal(data, &a.Name)
	}
	var obj struct {
		Name string `json:"name"`
		Text string `json:"#text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Name != "" {
		a.Name = obj.Name
	} else {
		a.Name = obj.Text
	}
	return nil
}

// wireCount accepts a count as either a JSON string or a number. Anything
// unparseable counts as zero.
type wireCount int

func (c *wireCount) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), "\"")
	if trimmed == "" || trimmed == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		*c = 0
		return nil
	}
	*c = wireCount(n)
	return nil
}

func (c wireCount) value() int { return int(c) }

type wireImages []struct {
	Text string `json:"#text"`
	Size string `json:"size"`
}

// best prefers the largest non-empty image URL.
func (imgs wireImages) best() string {
	for i := len(imgs) - 1; i >= 0; i-- {
		if imgs[i].Text != "" {
			return imgs[i].Text
		}
	}
	return ""
}

type wireArtistRecord struct {
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Listeners wireCount  `json:"listeners"`
	Image     wireImages `json:"image"`
}
