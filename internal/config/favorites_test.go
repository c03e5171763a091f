package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadFavoritesMissing(t *testing.T) {
	fav, err := LoadFavorites(filepath.Join(t.TempDir(), "favorites.yaml"))
	if err != nil {
		t.Fatalf("missing favorites should not be an error: %v", err)
	}
	if len(fav.AppIDs) != 0 {
		t.Errorf("expected empty favorites, got %v", fav.AppIDs)
	}
}

func TestLoadFavorites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.yaml")
	content := "favorites:\n  - firefox\n  - '  '\n  - org.gnome.Nautilus\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fav, err := LoadFavorites(path)
	if err != nil {
		t.Fatalf("LoadFavorites failed: %v", err)
	}
	want := []string{"firefox", "org.gnome.Nautilus"}
	if !slices.Equal(fav.AppIDs, want) {
		t.Errorf("AppIDs = %v, want %v", fav.AppIDs, want)
	}
}

func TestLoadFavoritesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.yaml")
	if err := os.WriteFile(path, []byte("favorites: {bad"), 0644); err != nil {
		t.Fatal(err)
	}

	fav, err := LoadFavorites(path)
	if err == nil {
		t.Error("malformed favorites should report an error")
	}
	if len(fav.AppIDs) != 0 {
		t.Error("malformed favorites should fall back to an empty list")
	}
}

func TestFavoritesSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.yaml")
	fav := Favorites{AppIDs: []string{"b", "a"}}

	if err := fav.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadFavorites(path)
	if err != nil {
		t.Fatalf("LoadFavorites failed: %v", err)
	}
	if !loaded.Equal(fav) {
		t.Errorf("round trip = %v, want %v", loaded.AppIDs, fav.AppIDs)
	}
}

func TestFavoritesToggle(t *testing.T) {
	fav := Favorites{AppIDs: []string{"a", "b"}}

	added := fav.Toggle("c")
	if !added.Contains("c") || fav.Contains("c") {
		t.Error("Toggle should add to a copy")
	}

	removed := added.Toggle("a")
	if removed.Contains("a") {
		t.Error("Toggle should remove a present ID")
	}
	if !slices.Equal(removed.AppIDs, []string{"b", "c"}) {
		t.Errorf("unexpected order after toggle: %v", removed.AppIDs)
	}
}
