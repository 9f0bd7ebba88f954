package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movierec/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MOVIEREC_DATA_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "movierec", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Catalog.MaxMovies != 5000 {
		t.Fatalf("expected max movies 5000, got %d", cfg.Catalog.MaxMovies)
	}
	if cfg.Features.CastLimit != 3 || cfg.Features.MaxFeatures != 5000 {
		t.Fatalf("unexpected feature defaults: %+v", cfg.Features)
	}
	if cfg.Recommend.DefaultCount != 5 || cfg.Recommend.MinCount != 3 || cfg.Recommend.MaxCount != 10 {
		t.Fatalf("unexpected recommend defaults: %+v", cfg.Recommend)
	}
	if cfg.TMDB.RequestTimeout != 15 || cfg.TMDB.MaxAttempts != 3 {
		t.Fatalf("unexpected tmdb retry defaults: %+v", cfg.TMDB)
	}
	if cfg.PostersEnabled() {
		t.Fatal("expected posters disabled without an API key")
	}
	wantCache := filepath.Join(tempHome, ".cache", "movierec", "posters.db")
	if cfg.PosterCache.Path != wantCache {
		t.Fatalf("unexpected poster cache path: got %q want %q", cfg.PosterCache.Path, wantCache)
	}
	if got := cfg.MoviesPath(); got != filepath.Join(wantData, "movies_metadata.csv") {
		t.Fatalf("unexpected movies path: %q", got)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.CacheDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.DataDir); !os.IsNotExist(err) {
		t.Fatalf("expected data dir to be left alone, stat err=%v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "movierec.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Catalog struct {
			MaxMovies int `toml:"max_movies"`
		} `toml:"catalog"`
		TMDB struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"tmdb"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Catalog.MaxMovies = 250
	custom.TMDB.APIKey = "abc123"
	custom.TMDB.BaseURL = "https://example.com/tmdb"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != custom.Paths.DataDir {
		t.Fatalf("expected data dir from file, got %q", cfg.Paths.DataDir)
	}
	if cfg.Catalog.MaxMovies != 250 {
		t.Fatalf("expected max movies 250, got %d", cfg.Catalog.MaxMovies)
	}
	if cfg.TMDB.APIKey != "abc123" {
		t.Fatalf("expected TMDB key from file, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != "https://example.com/tmdb" {
		t.Fatalf("expected TMDB base url override, got %q", cfg.TMDB.BaseURL)
	}
	if !cfg.PostersEnabled() {
		t.Fatal("expected posters enabled with an API key")
	}
}

func TestEnvFallbacks(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMDB_API_KEY", "  env-tmdb  ")

	configPath := filepath.Join(t.TempDir(), "movierec.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\ndata_dir = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MOVIEREC_DATA_DIR", dataDir)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "env-tmdb" {
		t.Errorf("expected trimmed TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Errorf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "movierec") {
		t.Fatalf("expected data dir to contain movierec, got %q", cfg.Paths.DataDir)
	}
	if cfg.Catalog.MaxMovies != 5000 {
		t.Fatalf("expected sample max_movies 5000, got %d", cfg.Catalog.MaxMovies)
	}
}

func TestEncodeMasksAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "secret-key"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(data), "secret-key") {
		t.Fatalf("expected API key to be masked:\n%s", data)
	}
	if cfg.TMDB.APIKey != "secret-key" {
		t.Fatal("Encode must not mutate the receiver")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"max movies", func(c *config.Config) { c.Catalog.MaxMovies = 0 }},
		{"cast limit", func(c *config.Config) { c.Features.CastLimit = -1 }},
		{"max features", func(c *config.Config) { c.Features.MaxFeatures = 0 }},
		{"min count", func(c *config.Config) { c.Recommend.MinCount = 0 }},
		{"max below min", func(c *config.Config) { c.Recommend.MaxCount = 2 }},
		{"default out of range", func(c *config.Config) { c.Recommend.DefaultCount = 11 }},
		{"tmdb url", func(c *config.Config) { c.TMDB.BaseURL = "ftp://tmdb" }},
		{"tmdb timeout", func(c *config.Config) { c.TMDB.RequestTimeout = 0 }},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
