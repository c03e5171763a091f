package desktop

import (
	"slices"
	"strings"

	"appmenu/internal/category"
	"appmenu/internal/config"
	"appmenu/internal/models"
	"appmenu/internal/ordering"
)

// Options controls how a descriptor becomes an entry
type Options struct {
	Config   config.Config    // Category taxonomy snapshot
	Locales  []string         // Locale preferences, most preferred first
	Root     string           // Search root the file was found under, for the file ID
	Desktops []string         // XDG_CURRENT_DESKTOP names; empty disables OnlyShowIn/NotShowIn
	Policy   *ordering.Policy // Category equivalence; nil uses the root collation
}

// Parse reads the descriptor at path and builds an entry from it.
// It reports false when the file is unreadable, malformed, hidden, or lacks
// a launch command or categories.
func Parse(path string, cfg config.Config, locales []string) (models.Entry, bool) {
	return ParseWith(path, Options{Config: cfg, Locales: locales})
}

// ParseWith is Parse with full options
func ParseWith(path string, opts Options) (models.Entry, bool) {
	d, err := DecodeFile(path)
	if err != nil {
		return models.Entry{}, false
	}
	return FromDescriptor(d, path, opts)
}

// FromDescriptor interprets a decoded descriptor
func FromDescriptor(d *Descriptor, path string, opts Options) (models.Entry, bool) {
	if d == nil {
		return models.Entry{}, false
	}
	if d.Bool(KeyNoDisplay) || d.Bool(KeyHidden) {
		return models.Entry{}, false
	}
	if !shownIn(d, opts.Desktops) {
		return models.Entry{}, false
	}

	appID := FileID(opts.Root, path)

	name, ok := d.Localized(KeyName, opts.Locales)
	if !ok {
		name = appID
	}

	exec, _ := d.String(KeyExec)
	exec = strings.TrimSpace(exec)
	if exec == "" {
		return models.Entry{}, false
	}

	rawCategories, ok := d.Raw(KeyCategories)
	if !ok {
		return models.Entry{}, false
	}
	policy := opts.Policy
	if policy == nil {
		policy = ordering.Default()
	}
	categories := category.ResolveAll(rawCategories, opts.Config.Categories, policy)
	if len(categories) == 0 {
		return models.Entry{}, false
	}

	icon, _ := d.String(KeyIcon)
	if icon = strings.TrimSpace(icon); icon == "" {
		icon = appID
	}

	comment, _ := d.Localized(KeyComment, opts.Locales)

	return models.Entry{
		AppID:      appID,
		Name:       name,
		Comment:    comment,
		Exec:       exec,
		Icon:       icon,
		Categories: categories,
		Path:       path,
	}, true
}

// shownIn evaluates OnlyShowIn and NotShowIn against the current desktops
func shownIn(d *Descriptor, desktops []string) bool {
	if len(desktops) == 0 {
		return true
	}
	match := func(list []string) bool {
		return slices.ContainsFunc(list, func(name string) bool {
			return slices.ContainsFunc(desktops, func(current string) bool {
				return strings.EqualFold(name, current)
			})
		})
	}
	if only := d.List(KeyOnlyShowIn); len(only) > 0 && !match(only) {
		return false
	}
	return !match(d.List(KeyNotShowIn))
}

// CurrentDesktops splits XDG_CURRENT_DESKTOP
func CurrentDesktops(getenv func(string) string) []string {
	var out []string
	for _, name := range strings.Split(getenv("XDG_CURRENT_DESKTOP"), ":") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
