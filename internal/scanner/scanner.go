package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"appmenu/internal/config"
	"appmenu/internal/desktop"
	"appmenu/internal/logging"
	"appmenu/internal/models"
	"appmenu/internal/ordering"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the decoded-descriptor cache
const defaultCacheSize = 2048

// Scanner discovers desktop entries under a set of search paths
type Scanner struct {
	paths    []string
	locales  []string
	desktops []string
	policy   *ordering.Policy
	cache    *lru.Cache[cacheKey, *desktop.Descriptor]
	log      *slog.Logger
}

// cacheKey identifies one version of a descriptor file
type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// candidate is a descriptor file chosen for parsing
type candidate struct {
	root string
	path string
}

// New creates a new Scanner over paths, in precedence order
func New(paths []string, locales []string) *Scanner {
	cache, err := lru.New[cacheKey, *desktop.Descriptor](defaultCacheSize)
	log := logging.For("scanner")
	if err != nil {
		// Only a non-positive size fails; keep scanning without the cache
		log.Warn("descriptor_cache_disabled", slog.String("error", err.Error()))
		cache = nil
	}
	return &Scanner{
		paths:   paths,
		locales: locales,
		policy:  ordering.ForLocales(locales),
		cache:   cache,
		log:     log,
	}
}

// WithDesktops enables OnlyShowIn/NotShowIn filtering for the given desktops
func (s *Scanner) WithDesktops(desktops []string) *Scanner {
	s.desktops = desktops
	return s
}

// WithPolicy overrides the ordering policy used for category deduplication
func (s *Scanner) WithPolicy(policy *ordering.Policy) *Scanner {
	s.policy = policy
	return s
}

// Paths returns the search paths
func (s *Scanner) Paths() []string {
	return s.paths
}

// Locales returns the locale preferences used for display names
func (s *Scanner) Locales() []string {
	return s.locales
}

// Policy returns the ordering policy
func (s *Scanner) Policy() *ordering.Policy {
	return s.policy
}

// Scan parses every visible descriptor under the search paths.
// Files that cannot be parsed are skipped; only cancellation is an error.
// The result order is deterministic: search-path precedence, then walk order.
func (s *Scanner) Scan(ctx context.Context, cfg config.Config) ([]models.Entry, error) {
	start := time.Now()

	candidates := s.collect(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.parseParallel(ctx, candidates, cfg)
	if err != nil {
		return nil, err
	}

	s.log.Debug("scan_complete",
		slog.Int("files", len(candidates)),
		slog.Int("entries", len(entries)),
		slog.Duration("took", time.Since(start)))
	return entries, nil
}

// collect walks the search paths and picks one file per desktop file ID.
// Earlier paths shadow later ones, so a user copy in ~/.local overrides the
// system entry, including when the user copy hides it.
func (s *Scanner) collect(ctx context.Context) []candidate {
	var out []candidate
	seen := make(map[string]bool)

	for _, root := range s.paths {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip errors
			}
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if d.IsDir() {
				if p != root && shouldSkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !desktop.IsDescriptor(d.Name()) {
				return nil
			}

			id := desktop.FileID(root, p)
			if seen[id] {
				return nil
			}
			seen[id] = true
			out = append(out, candidate{root: root, path: p})
			return nil
		})
		if err != nil {
			s.log.Debug("walk_failed", slog.String("root", root), slog.String("error", err.Error()))
		}
	}

	return out
}

// parseParallel parses candidates using a worker pool
func (s *Scanner) parseParallel(ctx context.Context, candidates []candidate, cfg config.Config) ([]models.Entry, error) {
	numWorkers := runtime.NumCPU() * 2 // IO-bound, so use more workers
	if numWorkers > 16 {
		numWorkers = 16 // Cap at 16 workers
	}

	type result struct {
		index int
		entry models.Entry
	}

	// Channels for work distribution
	jobs := make(chan int, len(candidates))
	results := make(chan result, len(candidates))

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue // Drain remaining jobs
				}
				if entry, ok := s.parseOne(candidates[idx], cfg); ok {
					results <- result{index: idx, entry: entry}
				}
			}
		}()
	}

	// Send jobs to workers
	for i := range candidates {
		jobs <- i
	}
	close(jobs)

	// Wait for all workers to finish and close results channel
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in candidate order
	slots := make([]*models.Entry, len(candidates))
	for r := range results {
		entry := r.entry
		slots[r.index] = &entry
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(candidates))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// parseOne decodes (or reuses) a descriptor and interprets it
func (s *Scanner) parseOne(c candidate, cfg config.Config) (models.Entry, bool) {
	d, ok := s.decode(c.path)
	if !ok {
		return models.Entry{}, false
	}
	return desktop.FromDescriptor(d, c.path, desktop.Options{
		Config:   cfg,
		Locales:  s.locales,
		Root:     c.root,
		Desktops: s.desktops,
		Policy:   s.policy,
	})
}

// decode returns the decoded descriptor, consulting the cache by path, mtime and size
func (s *Scanner) decode(path string) (*desktop.Descriptor, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	key := cacheKey{path: path, modTime: info.ModTime(), size: info.Size()}

	if s.cache != nil {
		if d, ok := s.cache.Get(key); ok {
			return d, true
		}
	}

	d, err := desktop.DecodeFile(path)
	if err != nil {
		s.log.Debug("descriptor_skipped", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}

	if s.cache != nil {
		s.cache.Add(key, d)
	}
	return d, true
}

// CacheLen returns the number of cached descriptors
func (s *Scanner) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// skipDirs contains directories to skip while walking search paths
var skipDirs = map[string]bool{
	".git": true, ".cache": true, "__pycache__": true,
}

// shouldSkipDir returns true if directory should be skipped while walking
func shouldSkipDir(name string) bool {
	return skipDirs[name]
}
