package poster

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/tmdb"
)

const (
	defaultMaxAttempts  = 3
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	breakerName         = "tmdb-api"
)

// Options configures a Service.
type Options struct {
	BaseURL           string
	ImageBaseURL      string
	Language          string
	Timeout           time.Duration
	MaxAttempts       int
	RequestsPerSecond float64
	// BreakerFailures is the number of consecutive transport failures that
	// open the breaker. Default: 5
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open. Default: 30s
	BreakerCooldown time.Duration
	TMDBOptions     []tmdb.Option
}

// OptionsFromConfig maps application config onto lookup options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		BaseURL:           cfg.TMDB.BaseURL,
		ImageBaseURL:      cfg.TMDB.ImageBaseURL,
		Language:          cfg.TMDB.Language,
		Timeout:           cfg.TMDBTimeout(),
		MaxAttempts:       cfg.TMDB.MaxAttempts,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
	}
}

// Service performs poster and detail lookups.
type Service struct {
	opts      Options
	logger    *slog.Logger
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[*tmdb.Response]
	newClient func(apiKey string) (tmdb.Searcher, error)
}

// New builds a lookup service.
func New(opts Options, logger *slog.Logger) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Timeout <= 0 {
		opts.Timeout = tmdb.DefaultTimeout
	}
	if strings.TrimSpace(opts.ImageBaseURL) == "" {
		opts.ImageBaseURL = defaultImageBaseURL
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 30 * time.Second
	}
	opts.ImageBaseURL = strings.TrimRight(opts.ImageBaseURL, "/")

	s := &Service{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "poster"),
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	s.limiter = rate.NewLimiter(limit, 1)
	s.breaker = gobreaker.NewCircuitBreaker[*tmdb.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		// Only transport failures count against TMDB health.
		IsSuccessful: func(err error) bool {
			return err == nil || !tmdb.Retryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.TMDBBreakerState.Set(breakerValue(to))
			s.logger.Info("tmdb breaker state changed",
				logging.String(logging.FieldEventType, "breaker_state_changed"),
				logging.String("from", from.String()),
				logging.String("to", to.String()))
		},
	})
	s.newClient = func(apiKey string) (tmdb.Searcher, error) {
		clientOpts := append([]tmdb.Option{tmdb.WithTimeout(opts.Timeout)}, opts.TMDBOptions...)
		return tmdb.New(apiKey, opts.BaseURL, opts.Language, clientOpts...)
	}
	return s
}

func breakerValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Lookup returns the poster URL for title. The boolean is false when no poster
// is available for any reason. cache may be nil.
func (s *Service) Lookup(ctx context.Context, title, apiKey string, cache Cache) (string, bool) {
	if cache != nil {
		if url, ok := cache.Get(title); ok {
			metrics.RecordPosterLookup("cache_hit")
			return url, url != ""
		}
	}
	if strings.TrimSpace(apiKey) == "" {
		metrics.RecordPosterLookup("no_credential")
		return "", false
	}

	url := ""
	result, ok, answered := s.firstResult(ctx, title, apiKey)
	if ok && result.PosterPath != "" {
		url = s.opts.ImageBaseURL + result.PosterPath
	}
	// Only a TMDB answer is cached; a failed request leaves the title to be
	// retried on the next lookup.
	if cache != nil && answered {
		cache.Set(title, url)
	}
	if !answered {
		metrics.RecordPosterLookup("unavailable")
		return "", false
	}
	if url == "" {
		metrics.RecordPosterLookup("missing")
		return "", false
	}
	metrics.RecordPosterLookup("found")
	return url, true
}

// Details returns the first TMDB search match for title.
func (s *Service) Details(ctx context.Context, title, apiKey string) (*tmdb.Result, bool) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, false
	}
	result, ok, _ := s.firstResult(ctx, title, apiKey)
	if !ok {
		return nil, false
	}
	return &result, true
}

// firstResult returns the first search match. answered reports whether TMDB
// itself responded, either with results or with a non-200 status.
func (s *Service) firstResult(ctx context.Context, title, apiKey string) (result tmdb.Result, found, answered bool) {
	client, err := s.newClient(apiKey)
	if err != nil {
		s.warn(ctx, title, err, "check tmdb.base_url and tmdb.api_key")
		return tmdb.Result{}, false, false
	}
	resp, err := s.search(ctx, client, title)
	if err != nil {
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			s.warn(ctx, title, err, "check tmdb.api_key")
			return tmdb.Result{}, false, true
		}
		s.warn(ctx, title, err, "check network access to TMDB")
		return tmdb.Result{}, false, false
	}
	if resp == nil || len(resp.Results) == 0 {
		return tmdb.Result{}, false, true
	}
	return resp.Results[0], true, true
}

// search retries transport failures up to MaxAttempts. TMDB answers, including
// errors and empty results, end the loop.
func (s *Service) search(ctx context.Context, client tmdb.Searcher, title string) (*tmdb.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		start := time.Now()
		resp, err := s.breaker.Execute(func() (*tmdb.Response, error) {
			return client.SearchMovie(ctx, title)
		})
		metrics.RecordTMDBRequest(time.Since(start), err)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) || !tmdb.Retryable(err) {
			break
		}
		s.logger.Debug("tmdb request failed, retrying",
			logging.String(logging.FieldQuery, title),
			logging.Int("attempt", attempt),
			logging.Error(err))
	}
	return nil, lastErr
}

func (s *Service) warn(ctx context.Context, title string, err error, hint string) {
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), "poster lookup failed", "poster_lookup_failed",
		logging.String(logging.FieldQuery, title),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "placeholder shown instead of poster"))
}
