// Package ordering defines the natural orders used for entries and categories.
//
// Entries sort by display name, comparing embedded numbers by value
// ("item2" before "item10"). Categories use the same comparison with
// Favorites pinned first and Other pinned last. Both orders are applied with
// stable sorts, and the same comparator backs every binary search over a
// bucket, so lookups agree with the order the buckets were built in.
package ordering

import (
	"slices"
	"strings"
	"sync"

	"appmenu/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Policy compares names with a locale-aware numeric collator.
// A Collator keeps scratch buffers, so calls are serialized.
type Policy struct {
	mu       sync.Mutex
	collator *collate.Collator
	tag      language.Tag
}

// New creates a policy for the given language tag
func New(tag language.Tag) *Policy {
	return &Policy{
		collator: collate.New(tag, collate.Numeric),
		tag:      tag,
	}
}

// ForLocales creates a policy for the first parseable locale,
// falling back to the root collation.
func ForLocales(locales []string) *Policy {
	for _, loc := range locales {
		if tag, ok := parseLocale(loc); ok {
			return New(tag)
		}
	}
	return New(language.Und)
}

// Default returns a policy using the root collation
func Default() *Policy {
	return New(language.Und)
}

// Tag returns the language tag the policy collates for
func (p *Policy) Tag() language.Tag {
	return p.tag
}

// CompareNames compares two display names in natural order
func (p *Policy) CompareNames(a, b string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collator.CompareString(a, b)
}

// CompareEntries orders entries by display name
func (p *Policy) CompareEntries(a, b models.Entry) int {
	return p.CompareNames(a.Name, b.Name)
}

// CompareCategories orders categories with Favorites first and Other last
func (p *Policy) CompareCategories(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == models.CategoryFavorites:
		return -1
	case b == models.CategoryFavorites:
		return 1
	case a == models.CategoryOther:
		return 1
	case b == models.CategoryOther:
		return -1
	}
	return p.CompareNames(a, b)
}

// SameCategory reports whether two category names are equivalent under the category order
func (p *Policy) SameCategory(a, b string) bool {
	return p.CompareCategories(a, b) == 0
}

// SortEntries sorts entries in place by display name, preserving the input order of equal names
func (p *Policy) SortEntries(entries []models.Entry) {
	slices.SortStableFunc(entries, p.CompareEntries)
}

// SortCategories sorts category names in place
func (p *Policy) SortCategories(categories []string) {
	slices.SortStableFunc(categories, p.CompareCategories)
}

// SearchEntry binary searches a bucket sorted by SortEntries for an entry with the given name
func (p *Policy) SearchEntry(bucket []models.Entry, name string) (int, bool) {
	return slices.BinarySearchFunc(bucket, name, func(e models.Entry, target string) int {
		return p.CompareNames(e.Name, target)
	})
}

// parseLocale converts a POSIX locale such as "de_DE.UTF-8@euro" into a language tag
func parseLocale(loc string) (language.Tag, bool) {
	if i := strings.IndexAny(loc, ".@"); i >= 0 {
		loc = loc[:i]
	}
	if loc == "" || loc == "C" || loc == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(loc, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
