package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"movierec/internal/insights"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/pipeline"
	"movierec/internal/poster"
	"movierec/internal/services"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	Engine      *pipeline.Engine
	Posters     PosterLookup
	PosterCache *PosterCache
	APIKey      string
	Counts      CountBounds
	Insights    insights.Options
	Logger      *slog.Logger
}

// Server answers recommendation queries over HTTP.
type Server struct {
	opts   ServerOptions
	logger *slog.Logger

	mu    sync.Mutex
	index *pipeline.Index

	summaryOnce sync.Once
	summary     insights.Summary
}

// NewServer builds a server. Engine is required.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Engine == nil {
		return nil, services.Wrap(services.ErrConfiguration, "api", "new server", "engine is required", nil)
	}
	if opts.Counts == (CountBounds{}) {
		opts.Counts = DefaultCountBounds()
	}
	if opts.PosterCache == nil {
		opts.PosterCache = &PosterCache{Cache: poster.NewMemoryCache(), Kind: "memory"}
	}
	return &Server{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "api"),
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/titles", s.handleTitles)
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/insights", s.handleInsights)
		r.Get("/posters", s.handlePoster)
	})
	return r
}

// Warm builds the index ahead of the first request.
func (s *Server) Warm(ctx context.Context) error {
	_, err := s.currentIndex(ctx)
	return err
}

func (s *Server) currentIndex(ctx context.Context) (*pipeline.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}
	index, err := s.opts.Engine.Index(ctx)
	if err != nil {
		return nil, err
	}
	s.index = index
	return index, nil
}

func (s *Server) indexReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index != nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Movies:      len(s.opts.Engine.Movies()),
		IndexReady:  s.indexReady(),
		PostersOn:   s.opts.APIKey != "" && s.opts.Posters != nil,
		PosterCache: s.opts.PosterCache.Kind,
	})
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	titles := FilterTitles(s.opts.Engine.Titles(), r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, TitlesResponse{Total: len(titles), Titles: titles})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	title := query.Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	k, err := ParseCount(query.Get("k"), s.opts.Counts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := pipeline.WithRequest(r.Context(), title)
	index, err := s.currentIndex(ctx)
	if err != nil {
		s.fail(ctx, w, err)
		return
	}
	start := time.Now()
	results := index.Recommend(title, k)
	metrics.ObserveStage("recommend", time.Since(start))
	metrics.RecordRecommendation(len(results), nil)
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "no recommendations")
		return
	}

	recs := FromRecommendations(results)
	if query.Get("posters") != "false" {
		AttachPosters(ctx, recs, s.opts.Posters, s.opts.APIKey, s.opts.PosterCache)
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{Query: title, Count: len(recs), Recommendations: recs})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	s.summaryOnce.Do(func() {
		s.summary = insights.Summarize(s.opts.Engine.Movies(), s.opts.Insights)
	})
	writeJSON(w, http.StatusOK, InsightsResponse{Summary: s.summary})
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	resp := PosterResponse{Title: title}
	if s.opts.Posters != nil {
		resp.URL, resp.Found = s.opts.Posters.Lookup(r.Context(), title, s.opts.APIKey, s.opts.PosterCache)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrTimeout) {
		status = http.StatusServiceUnavailable
	}
	logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "request failed", "request_failed",
		logging.Error(err),
		logging.String("error_kind", services.Kind(err)))
	writeError(w, status, err.Error())
}

// instrument records request metrics and ties the chi request id to the
// logging correlation id.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if id := chimiddleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(services.WithRequestID(r.Context(), id))
		}
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.RecordAPIRequest(r.Method, route, status, elapsed)
		s.logger.Debug("http request",
			logging.String("method", r.Method),
			logging.String("route", route),
			logging.Int("status", status),
			logging.Duration("duration", elapsed),
			logging.String(logging.FieldCorrelationID, chimiddleware.GetReqID(r.Context())))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // HTTP response write errors are not recoverable
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
