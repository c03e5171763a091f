// Package engine owns the published index and the loop that keeps it current.
//
// The loop handles one event at a time: monitor events, manual triggers and
// settings replacements each schedule a rebuild on the pool with a copy of
// the current settings. Completions come back into the loop, which installs
// a result only if it is newer than the installed one, then publishes an
// Update. Failed rebuilds are logged and leave the previous index in place.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"appmenu/internal/config"
	"appmenu/internal/index"
	"appmenu/internal/logging"
	"appmenu/internal/models"
	"appmenu/internal/monitor"
	"appmenu/internal/ordering"
	"appmenu/internal/rebuild"
	"appmenu/internal/scanner"
)

// Update is a newly installed index with the settings it was built from
type Update struct {
	Index      models.Index
	Categories []string // Presentation order of Index keys
	Config     config.Config
	Favorites  config.Favorites
	Generation uint64
	Changes    index.Summary // Against the previously installed index
}

// Options configures an Engine
type Options struct {
	Config    config.Config
	Favorites config.Favorites
	Policy    *ordering.Policy
	Events    <-chan monitor.Event // Change notifications; nil disables live refresh
	Debounce  time.Duration        // Coalesce triggers within this window; 0 rebuilds per trigger
	PoolSize  int64                // Concurrent rebuild bound; 0 uses rebuild.DefaultSize
}

// Engine schedules rebuilds and publishes their results
type Engine struct {
	pool     *rebuild.Pool
	policy   *ordering.Policy
	events   <-chan monitor.Event
	debounce time.Duration

	commands chan command
	results  chan rebuild.Result
	updates  chan Update
	stopped  chan struct{}
	stopOnce sync.Once

	mu        sync.Mutex
	config    config.Config
	favorites config.Favorites
	current   Update

	log *slog.Logger
}

type commandKind int

const (
	cmdTrigger commandKind = iota
	cmdSetConfig
	cmdSetFavorites
)

type command struct {
	kind      commandKind
	config    config.Config
	favorites config.Favorites
}

// New creates an engine that rebuilds with build
func New(build rebuild.Func, opts Options) *Engine {
	policy := opts.Policy
	if policy == nil {
		policy = ordering.Default()
	}
	return &Engine{
		pool:      rebuild.NewPool(opts.PoolSize, build),
		policy:    policy,
		events:    opts.Events,
		debounce:  opts.Debounce,
		commands:  make(chan command, 16),
		results:   make(chan rebuild.Result, 16),
		updates:   make(chan Update, 1),
		stopped:   make(chan struct{}),
		config:    opts.Config.Clone(),
		favorites: opts.Favorites.Clone(),
		log:       logging.For("engine"),
	}
}

// ScanBuild returns a rebuild function that scans with s and builds the index
func ScanBuild(s *scanner.Scanner, policy *ordering.Policy) rebuild.Func {
	return func(ctx context.Context, req rebuild.Request) (models.Index, error) {
		entries, err := s.Scan(ctx, req.Config)
		if err != nil {
			return nil, err
		}
		return index.Build(entries, req.Favorites, req.Config, policy), nil
	}
}

// Updates delivers installed indexes. Only the newest undelivered update is
// kept, so a slow reader never blocks the loop.
func (e *Engine) Updates() <-chan Update {
	return e.updates
}

// Current returns the most recently installed update (zero before the first)
func (e *Engine) Current() Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Config returns the configuration the next rebuild will use
func (e *Engine) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Clone()
}

// Favorites returns the favorites the next rebuild will use
func (e *Engine) Favorites() config.Favorites {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.favorites.Clone()
}

// Trigger schedules a rebuild with the current settings
func (e *Engine) Trigger() {
	e.send(command{kind: cmdTrigger})
}

// SetConfig replaces the configuration; an unchanged value schedules nothing
func (e *Engine) SetConfig(cfg config.Config) {
	e.send(command{kind: cmdSetConfig, config: cfg.Clone()})
}

// SetFavorites replaces the favorites list; an unchanged value schedules nothing
func (e *Engine) SetFavorites(favs config.Favorites) {
	e.send(command{kind: cmdSetFavorites, favorites: favs.Clone()})
}

func (e *Engine) send(cmd command) {
	select {
	case e.commands <- cmd:
	case <-e.stopped:
	}
}

// Run processes events until ctx is cancelled. It schedules the initial
// build itself and waits for in-flight rebuilds before returning.
func (e *Engine) Run(ctx context.Context) error {
	defer e.pool.Wait()
	defer e.stopOnce.Do(func() { close(e.stopped) })

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending int
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	schedule := func(reason string) {
		if e.debounce <= 0 {
			e.submit(ctx, reason)
			return
		}
		pending++
		if timer == nil {
			timer = time.NewTimer(e.debounce)
		} else {
			timer.Reset(e.debounce)
		}
		timerC = timer.C
	}

	e.submit(ctx, "initial")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-e.events:
			if !ok {
				e.log.Warn("monitor_stopped", slog.String("effect", "no live refresh"))
				e.events = nil
				continue
			}
			if reason, ok := e.applyEvent(ev); ok {
				schedule(reason)
			}

		case cmd := <-e.commands:
			if reason, ok := e.applyCommand(cmd); ok {
				schedule(reason)
			}

		case <-timerC:
			timerC = nil
			e.log.Debug("debounced", slog.Int("triggers", pending))
			pending = 0
			e.submit(ctx, "debounced")

		case res := <-e.results:
			e.install(res)
		}
	}
}

// RebuildNow builds and installs an index synchronously, without the loop
func (e *Engine) RebuildNow(ctx context.Context) (Update, error) {
	task := e.pool.Submit(ctx, e.snapshot())
	res, err := task.Wait(ctx)
	if err != nil {
		return Update{}, err
	}
	if res.Err != nil {
		return Update{}, res.Err
	}
	e.install(res)
	return e.Current(), nil
}

// applyEvent updates settings from a monitor event and reports whether to rebuild
func (e *Engine) applyEvent(ev monitor.Event) (string, bool) {
	switch ev.Source {
	case monitor.SourceConfig:
		return e.applyCommand(command{kind: cmdSetConfig, config: ev.Config})
	case monitor.SourceFavorites:
		return e.applyCommand(command{kind: cmdSetFavorites, favorites: ev.Favorites})
	default:
		if !monitor.ShouldRebuild(ev.Kind) {
			return "", false
		}
		return "descriptors_" + ev.Kind.String(), true
	}
}

func (e *Engine) applyCommand(cmd command) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch cmd.kind {
	case cmdSetConfig:
		if cmd.config.Equal(e.config) {
			return "", false
		}
		e.config = cmd.config
		return "config", true
	case cmdSetFavorites:
		if cmd.favorites.Equal(e.favorites) {
			return "", false
		}
		e.favorites = cmd.favorites
		return "favorites", true
	default:
		return "trigger", true
	}
}

// snapshot copies the settings for a rebuild
func (e *Engine) snapshot() rebuild.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return rebuild.Request{
		Config:    e.config.Clone(),
		Favorites: append([]string(nil), e.favorites.AppIDs...),
	}
}

// submit starts a rebuild and forwards its completion into the loop
func (e *Engine) submit(ctx context.Context, reason string) {
	task := e.pool.Submit(ctx, e.snapshot())
	e.log.Debug("rebuild_scheduled", slog.Uint64("generation", task.Generation()), slog.String("reason", reason))

	go func() {
		select {
		case <-task.Done():
		case <-ctx.Done():
			return
		}
		select {
		case e.results <- task.Result():
		case <-ctx.Done():
		}
	}()
}

// install publishes a result if it succeeded and is newer than the installed one
func (e *Engine) install(res rebuild.Result) {
	if res.Err != nil {
		e.log.Warn("rebuild_discarded", slog.Uint64("generation", res.Generation), slog.String("error", res.Err.Error()))
		return
	}

	e.mu.Lock()
	if res.Generation <= e.current.Generation {
		e.mu.Unlock()
		e.log.Debug("stale_rebuild", slog.Uint64("generation", res.Generation),
			slog.Uint64("installed", e.current.Generation))
		return
	}

	u := Update{
		Index:      res.Index,
		Categories: index.Categories(res.Index, res.Request.Config, e.policy),
		Config:     res.Request.Config,
		Favorites:  config.Favorites{AppIDs: res.Request.Favorites},
		Generation: res.Generation,
		Changes:    index.Changes(e.current.Index, res.Index),
	}
	e.current = u
	e.mu.Unlock()

	e.log.Info("index_installed",
		slog.Uint64("generation", u.Generation),
		slog.Int("apps", u.Index.Len()),
		slog.String("changes", u.Changes.String()))
	e.publish(u)
}

// publish replaces any undelivered update with u
func (e *Engine) publish(u Update) {
	for {
		select {
		case e.updates <- u:
			return
		default:
		}
		select {
		case <-e.updates:
		default:
		}
	}
}
