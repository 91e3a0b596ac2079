// Package tagmap translates the free-form mood descriptors produced by the AI
// agent into the fixed tag vocabulary understood by the Last.fm tag endpoints.
package tagmap

import (
	"strings"
)

// descriptorToTags is the static vocabulary. Keys are lowercase descriptors,
// values are Last.fm tags in preference order.
var descriptorToTags = map[string][]string{
	"uplifting":    {"happy"},
	"motivational": {"power pop", "pop rock"},
	"hopeful":      {"indie pop", "dream pop", "happy"},
	"calm":         {"ambient", "chillout", "acoustic"},
	"energetic":    {"dance", "electropop", "party", "upbeat"},
	"romantic":     {"love songs", "r&b", "soft rock"},
	"sad":          {"sad", "melancholy"},
	"chill":        {"chillout", "lo-fi", "downtempo"},
	"relaxing":     {"chillout", "ambient", "acoustic"},
	"happy":        {"happy", "feelgood", "pop"},
	"party":        {"party", "dance", "club"},
	"melancholy":   {"melancholy", "sad"},
	"angry":        {"metal", "punk", "hard rock"},
	"nostalgic":    {"classic rock", "oldies", "retro"},
	"summer":       {"summer", "surf rock", "tropical"},
	"focus":        {"instrumental", "study", "ambient"},
	"fun":          {"pop", "dance", "party"},
	"epic":         {"epic", "soundtrack", "orchestral"},
	"groovy":       {"funk", "soul", "groove"},
	"dreamy":       {"dream pop", "shoegaze", "ambient"},
}

// FallbackTags is used when mapping a descriptor set yields nothing.
var FallbackTags = []string{"happy", "pop", "dance", "party", "summer"}

// GenericRetryTags is the one-shot retry set used when the primary catalog
// fetch produces an empty pool.
var GenericRetryTags = []string{"rock", "pop", "happy", "summer", "party"}

// Map translates descriptors to catalog tags. Unknown descriptors are dropped.
// The result is deduplicated preserving first-seen order.
func Map(descriptors []string) []string {
	var mapped []string
	for _, descriptor := range descriptors {
		key := strings.ToLower(strings.TrimSpace(descriptor))
		if tags, ok := descriptorToTags[key]; ok {
			mapped = append(mapped, tags...)
		}
	}

	seen := make(map[string]struct{}, len(mapped))
	result := make([]string, 0, len(mapped))
	for _, tag := range mapped {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
