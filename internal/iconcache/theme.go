package iconcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTheme is the theme every icon theme inherits from
const DefaultTheme = "hicolor"

var extensions = []string{".png", ".svg", ".xpm"}

// ThemeResolver looks icons up in freedesktop icon theme directories
type ThemeResolver struct {
	DataDirs []string // e.g. ~/.local/share, /usr/share
	Themes   []string // Preferred themes; hicolor is always tried last
	Pixmaps  []string // Unthemed fallback directories
}

// NewThemeResolver creates a resolver for the given data directories
func NewThemeResolver(dataDirs []string, theme string) *ThemeResolver {
	r := &ThemeResolver{
		DataDirs: dataDirs,
		Pixmaps:  []string{"/usr/share/pixmaps"},
	}
	if theme != "" && theme != DefaultTheme {
		r.Themes = append(r.Themes, theme)
	}
	return r
}

// DataDirsFromEnv returns the XDG data directories, user directory first
func DataDirsFromEnv(getenv func(string) string) []string {
	var dirs []string
	if home := getenv("XDG_DATA_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if h := getenv("HOME"); h != "" {
		dirs = append(dirs, filepath.Join(h, ".local", "share"))
	}
	system := getenv("XDG_DATA_DIRS")
	if system == "" {
		system = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(system, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Lookup finds name at size. Absolute paths resolve to themselves if the file exists.
func (r *ThemeResolver) Lookup(name string, size int) (string, bool) {
	if name == "" {
		return "", false
	}
	if filepath.IsAbs(name) {
		return name, fileExists(name)
	}

	for _, theme := range append(append([]string(nil), r.Themes...), DefaultTheme) {
		for _, dir := range r.DataDirs {
			base := filepath.Join(dir, "icons", theme)
			if path, ok := findIcon(filepath.Join(base, fmt.Sprintf("%dx%d", size, size), "apps"), name); ok {
				return path, true
			}
			if path, ok := findIcon(filepath.Join(base, "scalable", "apps"), name); ok {
				return path, true
			}
		}
	}

	for _, dir := range r.Pixmaps {
		if path, ok := findIcon(dir, name); ok {
			return path, true
		}
	}
	return "", false
}

func findIcon(dir, name string) (string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
