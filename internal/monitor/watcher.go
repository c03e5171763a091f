// Package monitor turns filesystem notifications into change events.
//
// Three sources are watched: the descriptor search paths, the configuration
// file and the favorites file. Descriptor changes are forwarded as they
// arrive (read-only accesses excepted). The two settings files are reloaded
// on every event and forwarded only when their value actually changed.
// Events are delivered over a channel; nothing here schedules rebuilds.
package monitor

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"appmenu/internal/config"
	"appmenu/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Source identifies what changed
type Source int

const (
	SourceDescriptors Source = iota
	SourceConfig
	SourceFavorites
)

// String returns the name of the source
func (s Source) String() string {
	switch s {
	case SourceConfig:
		return "config"
	case SourceFavorites:
		return "favorites"
	default:
		return "descriptors"
	}
}

// Event is one change notification.
// Config and Favorites carry the reloaded value for their sources.
type Event struct {
	Source    Source
	Kind      Kind
	Path      string
	Config    config.Config
	Favorites config.Favorites
}

// Options configures a Watcher
type Options struct {
	Paths         []string         // Descriptor search paths
	ConfigPath    string           // Empty disables config reloads
	FavoritesPath string           // Empty disables favorites reloads
	Config        config.Config    // Currently applied configuration
	Favorites     config.Favorites // Currently applied favorites
	Buffer        int              // Event channel capacity; defaults to 64
}

// Watcher watches descriptor directories and settings files
type Watcher struct {
	fs            *fsnotify.Watcher
	roots         []string
	configPath    string
	favoritesPath string
	config        config.Config
	favorites     config.Favorites
	events        chan Event
	log           *slog.Logger
}

// New creates a watcher and registers every existing search path.
// Directories that cannot be watched are logged and skipped.
func New(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 64
	}

	w := &Watcher{
		fs:            fw,
		configPath:    cleanPath(opts.ConfigPath),
		favoritesPath: cleanPath(opts.FavoritesPath),
		config:        opts.Config.Clone(),
		favorites:     opts.Favorites.Clone(),
		events:        make(chan Event, buffer),
		log:           logging.For("monitor"),
	}

	for _, root := range opts.Paths {
		root = filepath.Clean(root)
		w.roots = append(w.roots, root)
		w.addTree(root)
	}

	// Editors replace settings files by rename, so watch the directories
	for _, dir := range w.settingsDirs() {
		if err := fw.Add(dir); err != nil {
			w.log.Warn("watch_failed", slog.String("path", dir), slog.String("error", err.Error()))
		}
	}

	return w, nil
}

// Events returns the channel of change events. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// WatchList returns the directories currently being watched
func (w *Watcher) WatchList() []string {
	return w.fs.WatchList()
}

// Close stops the underlying watcher
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run forwards events until ctx is cancelled or the watcher is closed.
// Watcher errors are logged; they never stop the loop.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher_error", slog.String("error", err.Error()))
		}
	}
}

// handle routes one notification to its source
func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	kind := Classify(ev.Op)

	switch {
	case w.configPath != "" && path == w.configPath:
		if kind == KindAccess {
			return
		}
		w.reloadConfig(ctx, kind)

	case w.favoritesPath != "" && path == w.favoritesPath:
		if kind == KindAccess {
			return
		}
		w.reloadFavorites(ctx, kind)

	case w.underRoot(path):
		if !ShouldRebuild(kind) {
			return
		}
		if kind == KindCreate {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addTree(path)
			}
		}
		w.log.Debug("descriptor_change", slog.String("path", path), slog.String("kind", kind.String()))
		w.emit(ctx, Event{Source: SourceDescriptors, Kind: kind, Path: path})
	}
}

func (w *Watcher) reloadConfig(ctx context.Context, kind Kind) {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		w.log.Warn("config_reload_failed", slog.String("path", w.configPath), slog.String("error", err.Error()))
		return
	}
	if cfg.Equal(w.config) {
		return
	}
	w.config = cfg
	w.log.Info("config_changed", slog.String("path", w.configPath))
	w.emit(ctx, Event{Source: SourceConfig, Kind: kind, Path: w.configPath, Config: cfg.Clone()})
}

func (w *Watcher) reloadFavorites(ctx context.Context, kind Kind) {
	favs, err := config.LoadFavorites(w.favoritesPath)
	if err != nil {
		w.log.Warn("favorites_reload_failed", slog.String("path", w.favoritesPath), slog.String("error", err.Error()))
		return
	}
	if favs.Equal(w.favorites) {
		return
	}
	w.favorites = favs
	w.log.Info("favorites_changed", slog.String("path", w.favoritesPath))
	w.emit(ctx, Event{Source: SourceFavorites, Kind: kind, Path: w.favoritesPath, Favorites: favs.Clone()})
}

// emit delivers an event unless ctx is cancelled first
func (w *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}

// addTree watches dir and all of its subdirectories
func (w *Watcher) addTree(dir string) {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(p); err != nil {
			w.log.Warn("watch_failed", slog.String("path", p), slog.String("error", err.Error()))
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.log.Debug("watch_walk_failed", slog.String("path", dir), slog.String("error", err.Error()))
	}
}

// settingsDirs returns the existing parent directories of the settings files
func (w *Watcher) settingsDirs() []string {
	var dirs []string
	for _, p := range []string{w.configPath, w.favoritesPath} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			w.log.Debug("settings_dir_missing", slog.String("path", dir))
			continue
		}
		if !slices.Contains(dirs, dir) && !w.underRoot(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// underRoot reports whether path is a search path or inside one
func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
