package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appmenu/internal/config"
	"appmenu/internal/desktop"
	"appmenu/internal/engine"
	"appmenu/internal/iconcache"
	"appmenu/internal/logging"
	"appmenu/internal/models"
	"appmenu/internal/monitor"
	"appmenu/internal/ordering"
	"appmenu/internal/scanner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// options holds the persistent command line flags
type options struct {
	configPath    string
	favoritesPath string
	debug         bool
	logFile       string
	debounce      time.Duration
	iconTheme     string

	closeLog func() error
}

// app is everything a command needs to build and serve the index
type app struct {
	configPath    string
	favoritesPath string
	paths         []string
	policy        *ordering.Policy
	scanner       *scanner.Scanner
	engine        *engine.Engine
	watcher       *monitor.Watcher // nil without live refresh
	log           *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "appmenu",
		Short:         "Browse and launch installed applications by category",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logOpts := logging.Options{Debug: opts.debug, File: opts.logFile}
			// The menu owns the terminal; other commands may log to stderr
			if cmd != cmd.Root() {
				logOpts.Stderr = stderr
			}
			closeFn, err := logging.Setup(logOpts)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			opts.closeLog = closeFn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeLog != nil {
				return opts.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.ConfigPath(), "config file (.yaml or .json)")
	flags.StringVar(&opts.favoritesPath, "favorites", config.FavoritesPath(), "favorites file")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	flags.DurationVar(&opts.debounce, "debounce", 0, "coalesce change events within this window")
	root.Flags().StringVar(&opts.iconTheme, "icon-theme", "", "preferred icon theme")

	root.AddCommand(
		newDumpCmd(opts),
		newCategoriesCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newDumpCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Build the index once and print every category with its entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(opts, false)
			u, err := a.engine.RebuildNow(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), u)
			}
			writeText(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the categories in presentation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(opts, false)
			u, err := a.engine.RebuildNow(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range u.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the index current and print a summary of every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := newApp(opts, true)
			done := a.start(ctx)

			out := cmd.OutOrStdout()
			for {
				select {
				case <-ctx.Done():
					return <-done
				case u := <-a.engine.Updates():
					writeChanges(out, u)
				}
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "appmenu %s (built %s)\n", version, buildTime)
		},
	}
}

// newApp loads settings and wires the scanner, engine and optional watcher.
// Settings that fail to load are logged and replaced by defaults.
func newApp(opts *options, live bool) *app {
	log := logging.For("main")

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Warn("config_load_failed", slog.String("path", opts.configPath), slog.String("error", err.Error()))
	}
	favs, err := config.LoadFavorites(opts.favoritesPath)
	if err != nil {
		log.Warn("favorites_load_failed", slog.String("path", opts.favoritesPath), slog.String("error", err.Error()))
	}

	locales := desktop.LanguagesFromEnv(os.Getenv)
	policy := ordering.ForLocales(locales)
	paths := desktop.DefaultPaths(os.Getenv)
	s := scanner.New(paths, locales).
		WithDesktops(desktop.CurrentDesktops(os.Getenv)).
		WithPolicy(policy)

	a := &app{
		configPath:    opts.configPath,
		favoritesPath: opts.favoritesPath,
		paths:         paths,
		policy:        policy,
		scanner:       s,
		log:           log,
	}

	var events <-chan monitor.Event
	if live {
		w, err := monitor.New(monitor.Options{
			Paths:         paths,
			ConfigPath:    opts.configPath,
			FavoritesPath: opts.favoritesPath,
			Config:        cfg,
			Favorites:     favs,
		})
		if err != nil {
			log.Warn("monitor_unavailable", slog.String("error", err.Error()))
		} else {
			a.watcher = w
			events = w.Events()
		}
	}

	a.engine = engine.New(engine.ScanBuild(s, policy), engine.Options{
		Config:    cfg,
		Favorites: favs,
		Policy:    policy,
		Events:    events,
		Debounce:  opts.debounce,
	})
	log.Debug("app_ready",
		slog.Any("paths", paths),
		slog.Any("locales", locales),
		slog.Bool("live", a.watcher != nil))
	return a
}

// start runs the watcher and the engine until ctx is done.
// The returned channel yields the engine's exit error once both have stopped.
func (a *app) start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	watcherDone := make(chan struct{})

	if a.watcher != nil {
		go func() {
			defer close(watcherDone)
			a.watcher.Run(ctx)
		}()
	} else {
		close(watcherDone)
	}

	go func() {
		err := a.engine.Run(ctx)
		<-watcherDone
		if a.watcher != nil {
			if cerr := a.watcher.Close(); cerr != nil {
				a.log.Debug("monitor_close_failed", slog.String("error", cerr.Error()))
			}
		}
		done <- err
	}()
	return done
}

func runMenu(ctx context.Context, opts *options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newApp(opts, true)
	done := a.start(ctx)

	icons := iconcache.New(iconcache.NewThemeResolver(iconcache.DataDirsFromEnv(os.Getenv), opts.iconTheme))
	m := newModel(ctx, a.engine, icons, opts.favoritesPath)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	cancel()
	if runErr := <-done; err == nil {
		err = runErr
	}
	return err
}

type dumpEntry struct {
	AppID   string `json:"app_id"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Exec    string `json:"exec"`
	Icon    string `json:"icon,omitempty"`
	Path    string `json:"path"`
}

type dumpCategory struct {
	Name    string      `json:"name"`
	Entries []dumpEntry `json:"entries"`
}

func dumpCategories(u engine.Update) []dumpCategory {
	out := make([]dumpCategory, 0, len(u.Categories))
	for _, c := range u.Categories {
		bucket := u.Index.Bucket(c)
		dc := dumpCategory{Name: c, Entries: make([]dumpEntry, 0, len(bucket))}
		for _, e := range bucket {
			dc.Entries = append(dc.Entries, toDumpEntry(e))
		}
		out = append(out, dc)
	}
	return out
}

func toDumpEntry(e models.Entry) dumpEntry {
	return dumpEntry{
		AppID:   e.AppID,
		Name:    e.Name,
		Comment: e.Comment,
		Exec:    e.Exec,
		Icon:    e.Icon,
		Path:    e.Path,
	}
}

func writeJSON(w io.Writer, u engine.Update) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dumpCategories(u))
}

func writeText(w io.Writer, u engine.Update) {
	for _, c := range dumpCategories(u) {
		fmt.Fprintf(w, "%s (%d)\n", c.Name, len(c.Entries))
		for _, e := range c.Entries {
			fmt.Fprintf(w, "  %s\t%s\n", e.Name, e.AppID)
		}
	}
}

func writeChanges(w io.Writer, u engine.Update) {
	fmt.Fprintf(w, "generation %d: %s (%d entries)\n", u.Generation, u.Changes, u.Index.Len())
	for _, line := range u.Changes.Removed {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	for _, line := range u.Changes.Added {
		fmt.Fprintf(w, "  + %s\n", line)
	}
}
