// Package category maps raw descriptor category tokens onto the configured taxonomy.
package category

import (
	"strings"

	"appmenu/internal/models"
	"appmenu/internal/ordering"
)

// Separator delimits tokens in a descriptor's Categories value
const Separator = ";"

// Resolve maps a raw token to the configured spelling of a matching
// category (case-insensitive), or to Other when nothing matches.
// Favorites is filled from the favorites list only, so a token naming it
// resolves to Other.
func Resolve(token string, configured []string) string {
	if strings.EqualFold(token, models.CategoryFavorites) {
		return models.CategoryOther
	}
	for _, name := range configured {
		if strings.EqualFold(name, token) {
			return name
		}
	}
	return models.CategoryOther
}

// ResolveAll splits a raw Categories value, resolves every token and drops
// later duplicates under the category order. Empty tokens are skipped.
func ResolveAll(raw string, configured []string, policy *ordering.Policy) []string {
	var resolved []string
	for _, token := range strings.Split(raw, Separator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		resolved = appendUnique(resolved, Resolve(token, configured), policy)
	}
	return resolved
}

// Dedup returns categories with later duplicates removed, keeping first occurrences
func Dedup(categories []string, policy *ordering.Policy) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = appendUnique(out, c, policy)
	}
	return out
}

func appendUnique(list []string, name string, policy *ordering.Policy) []string {
	for _, existing := range list {
		if policy.SameCategory(existing, name) {
			return list
		}
	}
	return append(list, name)
}
