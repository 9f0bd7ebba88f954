package testsupport

import (
	"path/filepath"
	"testing"

	"movierec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Posters are off and logging is quiet unless options say otherwise.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.PosterCache.Path = filepath.Join(base, "cache", "posters.db")
	cfgVal.TMDB.APIKey = ""
	cfgVal.Logging.Level = "error"
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTMDB points poster lookups at baseURL with the given key.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
		b.cfg.TMDB.APIKey = key
		b.cfg.TMDB.RequestsPerSecond = 0
	}
}

// WithPosterCache enables the persistent poster cache inside the temp tree.
func WithPosterCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.PosterCache.Enabled = true
	}
}

// WithCatalog writes movies into the config's data directory.
func WithCatalog(movies ...Movie) ConfigOption {
	return func(b *configBuilder) {
		WriteCatalog(b.t, b.cfg.Paths.DataDir, movies...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// WithConfig applies an arbitrary edit to the generated config.
func WithConfig(fn func(*config.Config)) ConfigOption {
	return func(b *configBuilder) {
		fn(b.cfg)
	}
}
