package serverrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"movierec/internal/api"
	"movierec/internal/config"
	"movierec/internal/insights"
	"movierec/internal/logging"
	"movierec/internal/pipeline"
	"movierec/internal/poster"
)

// Options configures server process runtime behavior.
type Options struct {
	LogLevel    string
	Bind        string
	Development bool
	// Ready, when set, receives the bound listen address once serving starts.
	Ready func(addr string)
}

const shutdownTimeout = 10 * time.Second

// Run starts the movierec HTTP server and blocks until shutdown.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "movierecd.log")
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock, err := AcquireLock(filepath.Join(cfg.Paths.LogDir, "movierecd.lock"))
	if err != nil {
		return err
	}
	defer lock.Release()

	pidPath := filepath.Join(cfg.Paths.LogDir, "movierecd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	logDependencySnapshot(logger, cfg)

	movies, err := pipeline.LoadCatalog(signalCtx, cfg, logger)
	if err != nil {
		return err
	}
	engine := pipeline.NewEngine(movies, pipeline.OptionsFromConfig(cfg), logger)

	cache := api.OpenPosterCache(cfg, logger)
	defer cache.Close()

	var lookup api.PosterLookup
	apiKey := ""
	if cfg.PostersEnabled() {
		lookup = poster.New(poster.OptionsFromConfig(cfg), logger)
		apiKey = cfg.TMDB.APIKey
	}

	server, err := api.NewServer(api.ServerOptions{
		Engine:      engine,
		Posters:     lookup,
		PosterCache: cache,
		APIKey:      apiKey,
		Counts: api.CountBounds{
			Default: cfg.Recommend.DefaultCount,
			Min:     cfg.Recommend.MinCount,
			Max:     cfg.Recommend.MaxCount,
		},
		Insights: insights.Options{},
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	go func() {
		if err := server.Warm(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
			logging.WarnWithContext(logger, "index warmup failed", "index_warmup_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "first recommendation request will build the index"))
		}
	}()

	bind := cfg.API.Bind
	if strings.TrimSpace(opts.Bind) != "" {
		bind = opts.Bind
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", bind, err)
	}
	httpServer := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()
	logger.Info("movierec server listening",
		logging.String(logging.FieldEventType, "server_started"),
		logging.String("addr", listener.Addr().String()),
		logging.String("lock", lock.Path()),
		logging.String("poster_cache", cache.Kind))
	if opts.Ready != nil {
		opts.Ready(listener.Addr().String())
	}

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-signalCtx.Done():
	}

	logger.Info("movierec server shutting down", logging.String(logging.FieldEventType, "server_stopping"))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	logger.Info("dependency snapshot",
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.Bool("tmdb_key_present", strings.TrimSpace(cfg.TMDB.APIKey) != ""),
		logging.Bool("tmdb_disabled", cfg.TMDB.Disabled),
		logging.Bool("poster_cache_enabled", cfg.PosterCache.Enabled),
		logging.Bool("movies_file_present", fileExists(cfg.MoviesPath())),
		logging.Bool("credits_file_present", fileExists(cfg.CreditsPath())),
		logging.Bool("keywords_file_present", fileExists(cfg.KeywordsPath())),
		logging.Int("max_movies", cfg.Catalog.MaxMovies),
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
