// Package index groups parsed entries into the category index the menu renders.
package index

import (
	"slices"

	"appmenu/internal/category"
	"appmenu/internal/config"
	"appmenu/internal/models"
	"appmenu/internal/ordering"
)

// Build groups entries into category buckets.
//
// Buckets are ordered by display name. Favorites holds the favorited entries
// in name order, and Other loses every entry whose name already appears in
// another bucket. Build does not modify its inputs and returns the same
// index for the same inputs.
func Build(entries []models.Entry, favorites []string, cfg config.Config, policy *ordering.Policy) models.Index {
	if policy == nil {
		policy = ordering.Default()
	}

	sorted := slices.Clone(entries)
	policy.SortEntries(sorted)

	idx := seed(cfg)
	for _, e := range sorted {
		for _, c := range resolve(e.Categories, cfg.Categories, policy) {
			idx[c] = append(idx[c], e)
		}
	}

	idx[models.CategoryFavorites] = favoritesBucket(sorted, favorites, policy)
	dedupOther(idx, policy)

	if cfg.SkipEmptyCategories {
		for c, bucket := range idx {
			if len(bucket) == 0 {
				delete(idx, c)
			}
		}
	}

	return compact(idx)
}

// seed creates an empty bucket for every configured and reserved category
func seed(cfg config.Config) models.Index {
	idx := make(models.Index, len(cfg.Categories)+2)
	for _, c := range cfg.Categories {
		idx[c] = nil
	}
	idx[models.CategoryFavorites] = nil
	idx[models.CategoryOther] = nil
	return idx
}

// resolve re-resolves an entry's categories against the configured taxonomy.
// Entries parsed against the same configuration pass through unchanged.
func resolve(categories, configured []string, policy *ordering.Policy) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, category.Resolve(c, configured))
	}
	return category.Dedup(out, policy)
}

// favoritesBucket picks the first entry for each favorited app ID, in list order
func favoritesBucket(sorted []models.Entry, favorites []string, policy *ordering.Policy) []models.Entry {
	var bucket []models.Entry
	used := make(map[string]bool, len(favorites))
	for _, appID := range favorites {
		if used[appID] {
			continue
		}
		i := slices.IndexFunc(sorted, func(e models.Entry) bool { return e.AppID == appID })
		if i < 0 {
			continue
		}
		used[appID] = true
		bucket = append(bucket, sorted[i])
	}
	policy.SortEntries(bucket)
	return bucket
}

// dedupOther removes entries from Other whose name is present in another bucket
func dedupOther(idx models.Index, policy *ordering.Policy) {
	other := idx[models.CategoryOther]
	if len(other) == 0 {
		return
	}

	kept := other[:0:0]
	for _, e := range other {
		if !presentElsewhere(idx, e.Name, policy) {
			kept = append(kept, e)
		}
	}
	idx[models.CategoryOther] = kept
}

func presentElsewhere(idx models.Index, name string, policy *ordering.Policy) bool {
	for c, bucket := range idx {
		if c == models.CategoryOther {
			continue
		}
		if _, found := policy.SearchEntry(bucket, name); found {
			return true
		}
	}
	return false
}

// compact copies the index into a map and slices sized exactly to their contents
func compact(idx models.Index) models.Index {
	out := make(models.Index, len(idx))
	for c, bucket := range idx {
		if len(bucket) == 0 {
			out[c] = []models.Entry{}
			continue
		}
		out[c] = slices.Clip(slices.Clone(bucket))
	}
	return out
}
