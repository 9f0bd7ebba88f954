package api

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/poster"
	"movierec/internal/postercache"
)

var (
	ErrPosterCacheDisabled      = errors.New("poster cache is disabled")
	ErrPosterCacheNotConfigured = errors.New("poster cache path is not configured")
)

// PosterCache pairs a poster.Cache with its release function.
type PosterCache struct {
	poster.Cache
	Kind  string
	close func() error
}

// Close releases resources held by the cache.
func (c *PosterCache) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// OpenPosterStore validates config and opens the persistent poster cache.
func OpenPosterStore(cfg *config.Config, logger *slog.Logger) (*postercache.Store, error) {
	if cfg == nil || !cfg.PosterCache.Enabled {
		return nil, ErrPosterCacheDisabled
	}
	path := strings.TrimSpace(cfg.PosterCache.Path)
	if path == "" {
		return nil, ErrPosterCacheNotConfigured
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	store, err := postercache.Open(path, logger)
	if err != nil {
		return nil, fmt.Errorf("open poster cache: %w", err)
	}
	return store, nil
}

// OpenPosterCache returns the persistent cache when enabled and usable, or a
// session memory cache otherwise.
func OpenPosterCache(cfg *config.Config, logger *slog.Logger) *PosterCache {
	store, err := OpenPosterStore(cfg, logger)
	if err == nil {
		return &PosterCache{Cache: store, Kind: "sqlite", close: store.Close}
	}
	if !errors.Is(err, ErrPosterCacheDisabled) {
		logging.WarnWithContext(logging.NewComponentLogger(logger, "api"), "poster cache unavailable", "poster_cache_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check poster_cache.path or disable poster_cache.enabled"),
			logging.String(logging.FieldImpact, "posters cached for this session only"))
	}
	return &PosterCache{Cache: poster.NewMemoryCache(), Kind: "memory"}
}
