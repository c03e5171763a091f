package category

import (
	"slices"
	"testing"

	"appmenu/internal/models"
	"appmenu/internal/ordering"
)

var configured = []string{"Favorites", "Audio", "AudioVideo", "utility", "Other"}

func TestResolve(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"Audio", "Audio"},
		{"audio", "Audio"},
		{"AUDIOVIDEO", "AudioVideo"},
		{"Utility", "utility"}, // configured spelling wins
		{"Development", models.CategoryOther},
		{"favorites", models.CategoryOther},
		{"Other", "Other"},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		if got := Resolve(tt.token, configured); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	for _, token := range []string{"AUDIO", "utility", "Unknown", "Other"} {
		once := Resolve(token, configured)
		twice := Resolve(once, configured)
		if once != twice {
			t.Errorf("Resolve not idempotent for %q: %q then %q", token, once, twice)
		}
	}
}

func TestResolveWithoutConfiguredOther(t *testing.T) {
	if got := Resolve("Game", []string{"Audio"}); got != models.CategoryOther {
		t.Errorf("unmatched token should map to Other even when unconfigured, got %q", got)
	}
}

func TestResolveAll(t *testing.T) {
	policy := ordering.Default()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "Audio;", []string{"Audio"}},
		{"case variants collapse", "Audio;AUDIO;audio", []string{"Audio"}},
		{"unknown tokens collapse into Other", "Development;IDE;Audio", []string{"Other", "Audio"}},
		{"empty tokens skipped", "Audio;;  ;Utility;", []string{"Audio", "utility"}},
		{"no tokens", ";;", nil},
		{"empty value", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAll(tt.raw, configured, policy)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ResolveAll(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	got := Dedup([]string{"Other", "Audio", "Other", "Audio", "Game"}, ordering.Default())
	want := []string{"Other", "Audio", "Game"}
	if !slices.Equal(got, want) {
		t.Errorf("Dedup() = %v, want %v", got, want)
	}
}
