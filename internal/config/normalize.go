package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeFeatures()
	c.normalizeTMDB()
	if err := c.normalizePosterCache(); err != nil {
		return err
	}
	c.normalizeAPI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		if value, ok := os.LookupEnv("MOVIEREC_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		} else {
			c.Paths.DataDir = defaultDataDir
		}
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.MoviesFile = strings.TrimSpace(c.Catalog.MoviesFile)
	if c.Catalog.MoviesFile == "" {
		c.Catalog.MoviesFile = defaultMoviesFile
	}
	c.Catalog.CreditsFile = strings.TrimSpace(c.Catalog.CreditsFile)
	if c.Catalog.CreditsFile == "" {
		c.Catalog.CreditsFile = defaultCreditsFile
	}
	c.Catalog.KeywordsFile = strings.TrimSpace(c.Catalog.KeywordsFile)
	if c.Catalog.KeywordsFile == "" {
		c.Catalog.KeywordsFile = defaultKeywordsFile
	}
	if c.Catalog.MaxMovies == 0 {
		c.Catalog.MaxMovies = defaultMaxMovies
	}
}

func (c *Config) normalizeFeatures() {
	if c.Features.CastLimit == 0 {
		c.Features.CastLimit = defaultCastLimit
	}
	if c.Features.MaxFeatures == 0 {
		c.Features.MaxFeatures = defaultMaxFeatures
	}
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.RequestTimeout <= 0 {
		c.TMDB.RequestTimeout = defaultTMDBRequestTimeout
	}
	if c.TMDB.MaxAttempts <= 0 {
		c.TMDB.MaxAttempts = defaultTMDBMaxAttempts
	}
	if c.TMDB.RequestsPerSecond < 0 {
		c.TMDB.RequestsPerSecond = 0
	}
}

func (c *Config) normalizePosterCache() error {
	var err error
	if strings.TrimSpace(c.PosterCache.Path) == "" {
		c.PosterCache.Path = filepath.Join(c.Paths.CacheDir, defaultPosterCacheFile)
	}
	if c.PosterCache.Path, err = expandPath(c.PosterCache.Path); err != nil {
		return fmt.Errorf("poster_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
}
