package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/pipeline"
	"movierec/internal/poster"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	engineOnce sync.Once
	engine     *pipeline.Engine
	engineErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerValue returns the CLI logger. Logs go to stderr and the log file so
// stdout carries only command output.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// catalogEngine loads the catalog once per invocation.
func (c *commandContext) catalogEngine(ctx context.Context) (*pipeline.Engine, error) {
	c.engineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.engineErr = err
			return
		}
		logger := c.loggerValue()
		movies, err := pipeline.LoadCatalog(ctx, cfg, logger)
		if err != nil {
			c.engineErr = err
			return
		}
		c.engine = pipeline.NewEngine(movies, pipeline.OptionsFromConfig(cfg), logger)
	})
	return c.engine, c.engineErr
}

// posterLookup returns a lookup service and key, or nil when posters are off.
func (c *commandContext) posterLookup() (api.PosterLookup, string) {
	cfg := c.configValue()
	if cfg == nil || !cfg.PostersEnabled() {
		return nil, ""
	}
	return poster.New(poster.OptionsFromConfig(cfg), c.loggerValue()), cfg.TMDB.APIKey
}

func (c *commandContext) countBounds() api.CountBounds {
	cfg := c.configValue()
	if cfg == nil {
		return api.DefaultCountBounds()
	}
	return api.CountBounds{
		Default: cfg.Recommend.DefaultCount,
		Min:     cfg.Recommend.MinCount,
		Max:     cfg.Recommend.MaxCount,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
