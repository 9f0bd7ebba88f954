package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and data file locations.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Catalog describes the three metadata tables and the working set bound.
type Catalog struct {
	MoviesFile   string `toml:"movies_file"`
	CreditsFile  string `toml:"credits_file"`
	KeywordsFile string `toml:"keywords_file"`
	// MaxMovies keeps only the most voted titles. Default: 5000
	MaxMovies int `toml:"max_movies"`
}

// Features contains tag and vectorizer settings.
type Features struct {
	CastLimit   int `toml:"cast_limit"`
	MaxFeatures int `toml:"max_features"`
}

// Recommend bounds the number of recommendations a caller may request.
type Recommend struct {
	DefaultCount int `toml:"default_count"`
	MinCount     int `toml:"min_count"`
	MaxCount     int `toml:"max_count"`
}

// TMDB contains configuration for The Movie Database poster lookups.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	Language       string `toml:"language"`
	RequestTimeout int    `toml:"request_timeout"`
	MaxAttempts    int    `toml:"max_attempts"`
	// RequestsPerSecond throttles outgoing lookups. Zero disables throttling.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Disabled          bool    `toml:"disabled"`
}

// PosterCache configures the optional on-disk poster URL cache.
type PosterCache struct {
	Enabled bool   `toml:"enabled"` // Default: false (session memory only)
	Path    string `toml:"path"`    // Default: <cache_dir>/posters.db
}

// API contains the HTTP server settings.
type API struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for movierec.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and cache directories
//   - Catalog: source table file names and working set size
//   - Features: cast truncation and vocabulary cap
//   - Recommend: default and allowed recommendation counts
//   - TMDB: poster lookups via The Movie Database
//   - PosterCache: persistent poster URL cache
//   - API: HTTP server bind address
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Catalog     Catalog     `toml:"catalog"`
	Features    Features    `toml:"features"`
	Recommend   Recommend   `toml:"recommend"`
	TMDB        TMDB        `toml:"tmdb"`
	PosterCache PosterCache `toml:"poster_cache"`
	API         API         `toml:"api"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/movierec/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("movierec.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and cache directories. The data directory
// is never created: a missing catalog is a load failure, not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.PosterCache.Enabled && strings.TrimSpace(c.PosterCache.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.PosterCache.Path), 0o755); err != nil {
			return fmt.Errorf("create poster cache directory: %w", err)
		}
	}
	return nil
}

// MoviesPath returns the absolute path of the movie attribute table.
func (c *Config) MoviesPath() string {
	return c.dataFile(c.Catalog.MoviesFile)
}

// CreditsPath returns the absolute path of the cast/crew table.
func (c *Config) CreditsPath() string {
	return c.dataFile(c.Catalog.CreditsFile)
}

// KeywordsPath returns the absolute path of the keywords table.
func (c *Config) KeywordsPath() string {
	return c.dataFile(c.Catalog.KeywordsFile)
}

func (c *Config) dataFile(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.DataDir, name)
}

// PostersEnabled reports whether poster lookups may reach TMDB at all.
func (c *Config) PostersEnabled() bool {
	return !c.TMDB.Disabled && strings.TrimSpace(c.TMDB.APIKey) != ""
}

// TMDBTimeout returns the per-request TMDB timeout.
func (c *Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDB.RequestTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "movierec")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/movierec"
	}
	return filepath.Join(home, ".cache", "movierec")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML. The TMDB key is masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	if clone.TMDB.APIKey != "" {
		clone.TMDB.APIKey = "********"
	}
	data, err := toml.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
