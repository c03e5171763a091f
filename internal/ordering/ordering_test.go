package ordering

import (
	"slices"
	"testing"

	"appmenu/internal/models"

	"golang.org/x/text/language"
)

func names(entries []models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSortEntriesNatural(t *testing.T) {
	p := Default()
	entries := []models.Entry{{Name: "a2"}, {Name: "a10"}, {Name: "a1"}}

	p.SortEntries(entries)

	want := []string{"a1", "a2", "a10"}
	if got := names(entries); !slices.Equal(got, want) {
		t.Errorf("SortEntries() = %v, want %v", got, want)
	}
}

func TestSortEntriesStable(t *testing.T) {
	p := Default()
	entries := []models.Entry{
		{Name: "Foo", AppID: "first"},
		{Name: "Bar", AppID: "bar"},
		{Name: "Foo", AppID: "second"},
	}

	p.SortEntries(entries)

	if entries[1].AppID != "first" || entries[2].AppID != "second" {
		t.Errorf("equal names must keep input order, got %s then %s", entries[1].AppID, entries[2].AppID)
	}
}

func TestSortCategories(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{
			in:   []string{"Other", "Utility", "Favorites", "Audio"},
			want: []string{"Favorites", "Audio", "Utility", "Other"},
		},
		{
			in:   []string{"Game10", "Game2", "Other", "Game1"},
			want: []string{"Game1", "Game2", "Game10", "Other"},
		},
		{
			in:   []string{"Favorites"},
			want: []string{"Favorites"},
		},
	}

	p := Default()
	for _, tt := range tests {
		got := slices.Clone(tt.in)
		p.SortCategories(got)
		if !slices.Equal(got, tt.want) {
			t.Errorf("SortCategories(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompareCategoriesReserved(t *testing.T) {
	p := Default()

	if p.CompareCategories("Favorites", "Favorites") != 0 {
		t.Error("Favorites should equal itself")
	}
	if p.CompareCategories("Other", "Other") != 0 {
		t.Error("Other should equal itself")
	}
	if p.CompareCategories("Favorites", "AAA") >= 0 {
		t.Error("Favorites should sort before everything")
	}
	if p.CompareCategories("Other", "ZZZ") <= 0 {
		t.Error("Other should sort after everything")
	}
	if p.CompareCategories("Favorites", "Other") >= 0 {
		t.Error("Favorites should sort before Other")
	}
}

func TestSearchEntry(t *testing.T) {
	p := Default()
	bucket := []models.Entry{{Name: "Zed"}, {Name: "app10"}, {Name: "app9"}, {Name: "Browser"}}
	p.SortEntries(bucket)

	for _, e := range bucket {
		if _, ok := p.SearchEntry(bucket, e.Name); !ok {
			t.Errorf("SearchEntry(%q) not found in sorted bucket %v", e.Name, names(bucket))
		}
	}
	if _, ok := p.SearchEntry(bucket, "Missing"); ok {
		t.Error("SearchEntry should not find an absent name")
	}
}

func TestForLocales(t *testing.T) {
	tests := []struct {
		locales []string
		want    language.Tag
	}{
		{[]string{"de_DE.UTF-8"}, language.MustParse("de-DE")},
		{[]string{"C", "fr"}, language.French},
		{[]string{"POSIX"}, language.Und},
		{nil, language.Und},
	}

	for _, tt := range tests {
		if got := ForLocales(tt.locales).Tag(); got != tt.want {
			t.Errorf("ForLocales(%v).Tag() = %v, want %v", tt.locales, got, tt.want)
		}
	}
}
