package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateFeatures(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Catalog.MaxMovies < 1 {
		return errors.New("catalog.max_movies must be positive")
	}
	return nil
}

func (c *Config) validateFeatures() error {
	return ensurePositiveMap(map[string]int{
		"features.cast_limit":   c.Features.CastLimit,
		"features.max_features": c.Features.MaxFeatures,
	})
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinCount < 1 {
		return errors.New("recommend.min_count must be >= 1")
	}
	if r.MaxCount < r.MinCount {
		return errors.New("recommend.max_count must be >= recommend.min_count")
	}
	if r.DefaultCount < r.MinCount || r.DefaultCount > r.MaxCount {
		return fmt.Errorf("recommend.default_count must be between %d and %d", r.MinCount, r.MaxCount)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		return fmt.Errorf("tmdb.base_url must be an http(s) URL, got %q", c.TMDB.BaseURL)
	}
	if !strings.HasPrefix(c.TMDB.ImageBaseURL, "http://") && !strings.HasPrefix(c.TMDB.ImageBaseURL, "https://") {
		return fmt.Errorf("tmdb.image_base_url must be an http(s) URL, got %q", c.TMDB.ImageBaseURL)
	}
	return ensurePositiveMap(map[string]int{
		"tmdb.request_timeout": c.TMDB.RequestTimeout,
		"tmdb.max_attempts":    c.TMDB.MaxAttempts,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
