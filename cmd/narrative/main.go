package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Coroz2/imdb-narrative/internal/config"
	"github.com/Coroz2/imdb-narrative/internal/controller"
	"github.com/Coroz2/imdb-narrative/internal/display"
	"github.com/Coroz2/imdb-narrative/internal/imdb"
	"github.com/Coroz2/imdb-narrative/internal/imdb/cache"
)

var (
	configPath = flag.String("config", "", "Path to configuration file (optional)")
	dataPath   = flag.String("data", "", "Path to the IMDB top-1000 CSV (overrides config)")
	noCache    = flag.Bool("no-cache", false, "Bypass the dataset cache")
	watchMode  = flag.Bool("watch", false, "Rebuild the session when the dataset file changes")
	verbose    = flag.Bool("verbose", false, "Show detailed logging")
)

// session bundles everything derived from one dataset load. A dataset is
// immutable for the session's lifetime; watch mode replaces the whole
// session, never patches it.
type session struct {
	dataset    *imdb.Dataset
	controller *controller.Controller
	rejected   int
}

// sessionHolder hands the current session to the control loop while
// watch mode swaps in rebuilt ones.
type sessionHolder struct {
	mu      sync.Mutex
	current *session
}

func (h *sessionHolder) get() *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *sessionHolder) swap(s *session) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

func main() {
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *watchMode {
		cfg.Watch.Enabled = true
	}
	if *noCache {
		cfg.Cache.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Load the dataset and build the session. A failed load leaves the
	// system inert: no scenes render and no controls are wired.
	sess, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	yearMin, yearMax := sess.dataset.YearExtent()
	fmt.Printf("Loaded %d films (%d rows rejected), %d–%d, %d genres\n",
		sess.dataset.Len(), sess.rejected, yearMin, yearMax, len(sess.dataset.Genres()))

	if err := sess.controller.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering initial scene: %v\n", err)
		os.Exit(1)
	}

	holder := &sessionHolder{current: sess}

	// Watch mode: rebuild the whole session when the CSV changes.
	if cfg.Watch.Enabled {
		w, err := newDatasetWatcher(cfg.Data.Path,
			time.Duration(cfg.Watch.DebounceSeconds)*time.Second,
			func() { rebuildSession(cfg, holder) },
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting dataset watcher: %v\n", err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting dataset watcher: %v\n", err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	// Controls are only wired now, after the one-time load has resolved.
	runControlLoop(os.Stdin, holder, cfg)
}

// newSession loads and normalizes the dataset, builds the immutable
// Dataset and constructs the scene controller wired to the terminal
// renderer.
func newSession(cfg *config.Config) (*session, error) {
	movies, rejected, err := loadMovies(cfg)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("dataset %s contains no valid records", cfg.Data.Path)
	}

	ds := imdb.BuildDataset(movies)
	term := display.New(*verbose)
	ctrl, err := controller.New(ds, term, term)
	if err != nil {
		return nil, err
	}

	return &session{dataset: ds, controller: ctrl, rejected: rejected}, nil
}

// loadMovies loads through the SQLite cache when enabled; cache trouble
// degrades to a direct CSV load rather than failing the session.
func loadMovies(cfg *config.Config) ([]imdb.Movie, int, error) {
	if !cfg.Cache.Enabled {
		return imdb.LoadCSV(cfg.Data.Path)
	}

	c, err := cache.NewSQLiteCache(cfg.Cache.Path)
	if err != nil {
		slog.Warn("dataset cache unavailable, loading directly", "error", err)
		return imdb.LoadCSV(cfg.Data.Path)
	}
	defer c.Close()

	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	return imdb.LoadWithCache(cfg.Data.Path, c, ttl)
}

// rebuildSession replaces the current session after a dataset change.
// A failed rebuild keeps the previous session running.
func rebuildSession(cfg *config.Config, holder *sessionHolder) {
	slog.Info("dataset changed, rebuilding session", "path", cfg.Data.Path)

	sess, err := newSession(cfg)
	if err != nil {
		slog.Error("failed to rebuild session, keeping previous dataset", "error", err)
		return
	}
	if err := sess.controller.Start(); err != nil {
		slog.Error("failed to render rebuilt session", "error", err)
		return
	}
	holder.swap(sess)

	fmt.Printf("\nDataset reloaded: %d films\n> ", sess.dataset.Len())
}
