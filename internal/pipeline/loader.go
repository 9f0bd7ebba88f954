package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"movierec/internal/catalog"
	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/services"
)

// LoadCatalog reads the configured catalog tables.
func LoadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]catalog.Movie, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "load", "catalog", "config is nil", nil)
	}
	ctx = services.WithStage(ctx, "load")
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "catalog"))

	start := time.Now()
	movies, err := catalog.Load(catalog.Sources{
		Movies:   cfg.MoviesPath(),
		Credits:  cfg.CreditsPath(),
		Keywords: cfg.KeywordsPath(),
	}, catalog.Options{MaxMovies: cfg.Catalog.MaxMovies})
	elapsed := time.Since(start)
	metrics.ObserveStage("load", elapsed)
	if err != nil {
		logging.ErrorWithContext(logger, "catalog load failed", "catalog_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.data_dir and the catalog file names"))
		return nil, err
	}
	logger.Info("catalog loaded",
		logging.String(logging.FieldEventType, "catalog_loaded"),
		logging.String("movies", humanize.Comma(int64(len(movies)))),
		logging.Duration("duration", elapsed))
	return movies, nil
}
