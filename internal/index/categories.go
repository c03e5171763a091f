package index

import (
	"slices"

	"appmenu/internal/config"
	"appmenu/internal/models"
	"appmenu/internal/ordering"
)

// Categories returns the index keys in presentation order.
//
// Configured order is kept unless SortCategories is set. Reserved categories
// present in the index but missing from the configuration are still shown,
// Favorites first and Other last. Categories absent from the index are omitted.
func Categories(idx models.Index, cfg config.Config, policy *ordering.Policy) []string {
	if policy == nil {
		policy = ordering.Default()
	}

	var out []string
	if idx.Has(models.CategoryFavorites) && !slices.Contains(cfg.Categories, models.CategoryFavorites) {
		out = append(out, models.CategoryFavorites)
	}
	for _, c := range cfg.Categories {
		if idx.Has(c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if idx.Has(models.CategoryOther) && !slices.Contains(out, models.CategoryOther) {
		out = append(out, models.CategoryOther)
	}

	if cfg.SortCategories {
		policy.SortCategories(out)
	}
	return out
}
