package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"appmenu/internal/models"
	"appmenu/internal/ordering"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Config holds the category taxonomy and presentation flags.
// Values are replaced whole; readers keep their own copy.
type Config struct {
	Categories          []string `yaml:"categories" json:"categories"`                       // Ordered canonical category names
	SkipEmptyCategories bool     `yaml:"skip_empty_categories" json:"skip_empty_categories"` // Hide categories without entries
	SortCategories      bool     `yaml:"sort_categories" json:"sort_categories"`             // Present categories in category order
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// Default returns the default configuration
func Default() Config {
	return Config{
		SkipEmptyCategories: true,
		Categories: []string{
			models.CategoryFavorites,
			"Audio",
			"AudioVideo",
			"COSMIC",
			"Education",
			"Game",
			"Graphics",
			"Network",
			"Office",
			"Science",
			"Settings",
			"System",
			"Utility",
			models.CategoryOther,
		},
		SortCategories: true,
	}
}

// Dir returns the directory holding appmenu config files
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "appmenu")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "appmenu")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), configFileName)
}

// Load loads the configuration from file.
// A missing file yields the defaults. An unreadable or malformed file also
// yields the defaults, together with the error so the caller can log it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := decode(path, data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg.Normalize(), nil
}

// Save saves the configuration to file
func (c Config) Save(path string) error {
	return save(path, c)
}

// Clone returns a deep copy
func (c Config) Clone() Config {
	c.Categories = slices.Clone(c.Categories)
	return c
}

// Equal reports whether two configs are identical
func (c Config) Equal(other Config) bool {
	return c.SkipEmptyCategories == other.SkipEmptyCategories &&
		c.SortCategories == other.SortCategories &&
		slices.Equal(c.Categories, other.Categories)
}

// Normalize trims category names, drops blanks and case-insensitive
// duplicates, and spells reserved categories the canonical way.
func (c Config) Normalize() Config {
	out := c
	out.Categories = make([]string, 0, len(c.Categories))
	seen := make(map[string]bool, len(c.Categories))

	for _, name := range c.Categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		switch {
		case strings.EqualFold(name, models.CategoryFavorites):
			name = models.CategoryFavorites
		case strings.EqualFold(name, models.CategoryOther):
			name = models.CategoryOther
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Categories = append(out.Categories, name)
	}

	return out
}

// Ordered returns the configured categories in presentation order:
// sorted by the category order when SortCategories is set,
// configuration order otherwise.
func (c Config) Ordered(policy *ordering.Policy) []string {
	categories := slices.Clone(c.Categories)
	if c.SortCategories {
		policy.SortCategories(categories)
	}
	return categories
}

// decode picks the file format from the extension
func decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		return json.Unmarshal(std, v)
	default:
		return yaml.Unmarshal(data, v)
	}
}

// encode mirrors decode
func encode(path string, v any) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return yaml.Marshal(v)
	}
}

func save(path string, v any) error {
	data, err := encode(path, v)
	if err != nil {
		return err
	}

	// Create config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}
