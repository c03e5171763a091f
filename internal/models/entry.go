package models

import (
	"path/filepath"
	"slices"
)

// Reserved category names
const (
	CategoryFavorites = "Favorites" // Synthetic, populated from the favorites list
	CategoryOther     = "Other"     // Catch-all for unmatched categories
)

// Entry represents one launchable application discovered from a descriptor file
type Entry struct {
	AppID      string   // Desktop file ID, used for favorites matching
	Name       string   // Display name resolved against locale preferences
	Comment    string   // Localized tooltip text (optional)
	Exec       string   // Command line used to launch the application
	Icon       string   // Icon theme name or absolute path
	Categories []string // Canonical categories, never empty
	Path       string   // Descriptor file the entry was parsed from
}

// Clone returns a deep copy of the entry
func (e Entry) Clone() Entry {
	e.Categories = slices.Clone(e.Categories)
	return e
}

// Equal reports structural equality
func (e Entry) Equal(other Entry) bool {
	return e.AppID == other.AppID &&
		e.Name == other.Name &&
		e.Comment == other.Comment &&
		e.Exec == other.Exec &&
		e.Icon == other.Icon &&
		e.Path == other.Path &&
		slices.Equal(e.Categories, other.Categories)
}

// IconIsPath reports whether Icon refers to a file rather than a theme name
func (e Entry) IconIsPath() bool {
	return filepath.IsAbs(e.Icon)
}

// InCategory reports whether the entry was assigned to the given category
func (e Entry) InCategory(category string) bool {
	return slices.Contains(e.Categories, category)
}
