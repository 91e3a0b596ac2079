package tagmap

import (
	"reflect"
	"testing"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name        string
		descriptors []string
		want        []string
	}{
		{
			name:        "energetic_and_happy",
			descriptors: []string{"energetic", "happy"},
			want:        []string{"dance", "electropop", "party", "upbeat", "happy", "feelgood", "pop"},
		},
		{
			name:        "dedup_preserves_first_seen_order",
			descriptors: []string{"party", "fun"},
			want:        []string{"party", "dance", "club", "pop"},
		},
		{
			name:        "case_and_whitespace_insensitive",
			descriptors: []string{"  Energetic ", "HAPPY"},
			want:        []string{"dance", "electropop", "party", "upbeat", "happy", "feelgood", "pop"},
		},
		{
			name:        "unknown_descriptors_dropped",
			descriptors: []string{"quixotic", "brooding"},
			want:        []string{},
		},
		{
			name:        "unknown_mixed_with_known",
			descriptors: []string{"quixotic", "sad"},
			want:        []string{"sad", "melancholy"},
		},
		{
			name:        "empty_input",
			descriptors: nil,
			want:        []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Map(tc.descriptors)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Map(%v)=%v, want %v", tc.descriptors, got, tc.want)
			}
		})
	}
}

func TestMapNoDuplicates(t *testing.T) {
	got := Map([]string{"happy", "fun", "party", "energetic"})
	seen := map[string]bool{}
	for _, tag := range got {
		if seen[tag] {
			t.Fatalf("duplicate tag %q in %v", tag, got)
		}
		seen[tag] = true
	}
}
