package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Favorites is the externally owned, ordered list of favorited app IDs
type Favorites struct {
	AppIDs []string `yaml:"favorites" json:"favorites"`
}

// favoritesFileName is the name of the favorites file
const favoritesFileName = "favorites.yaml"

// FavoritesPath returns the path to the favorites file
func FavoritesPath() string {
	return filepath.Join(Dir(), favoritesFileName)
}

// LoadFavorites loads the favorites list from file.
// Like Load, failures fall back to an empty list plus the error.
func LoadFavorites(path string) (Favorites, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Favorites{}, nil
		}
		return Favorites{}, fmt.Errorf("read favorites %s: %w", path, err)
	}

	var fav Favorites
	if err := decode(path, data, &fav); err != nil {
		return Favorites{}, fmt.Errorf("parse favorites %s: %w", path, err)
	}

	cleaned := fav.AppIDs[:0]
	for _, id := range fav.AppIDs {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	fav.AppIDs = cleaned

	return fav, nil
}

// Save saves the favorites list to file
func (f Favorites) Save(path string) error {
	if f.AppIDs == nil {
		f.AppIDs = []string{}
	}
	return save(path, f)
}

// Clone returns a deep copy
func (f Favorites) Clone() Favorites {
	return Favorites{AppIDs: slices.Clone(f.AppIDs)}
}

// Equal reports whether both lists hold the same IDs in the same order
func (f Favorites) Equal(other Favorites) bool {
	return slices.Equal(f.AppIDs, other.AppIDs)
}

// Contains reports whether the app ID is favorited
func (f Favorites) Contains(appID string) bool {
	return slices.Contains(f.AppIDs, appID)
}

// Toggle adds the app ID when absent and removes it when present
func (f Favorites) Toggle(appID string) Favorites {
	out := f.Clone()
	if i := slices.Index(out.AppIDs, appID); i >= 0 {
		out.AppIDs = slices.Delete(out.AppIDs, i, i+1)
		return out
	}
	out.AppIDs = append(out.AppIDs, appID)
	return out
}
