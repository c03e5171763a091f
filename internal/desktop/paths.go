package desktop

import (
	"path/filepath"
	"strings"
)

// DefaultPaths returns the application search paths in precedence order:
// $XDG_DATA_HOME/applications, then each $XDG_DATA_DIRS/applications.
func DefaultPaths(getenv func(string) string) []string {
	dataHome := getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home := getenv("HOME"); home != "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}

	dataDirs := getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	var paths []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" {
			return
		}
		p := filepath.Join(filepath.Clean(dir), "applications")
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	add(dataHome)
	for _, dir := range strings.Split(dataDirs, ":") {
		add(dir)
	}
	return paths
}

// FileID returns the desktop file ID of path found under root:
// the relative path with separators replaced by '-' and the extension removed.
// With no root, or a path outside it, the base name is used.
func FileID(root, path string) string {
	rel := filepath.Base(path)
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = strings.TrimSuffix(rel, Extension)
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

// IsDescriptor reports whether name looks like a desktop entry file
func IsDescriptor(name string) bool {
	return strings.HasSuffix(name, Extension) && !strings.HasPrefix(filepath.Base(name), ".")
}
