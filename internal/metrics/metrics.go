// Package metrics exposes Prometheus instrumentation for the recommendation
// pipeline, poster lookups and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"movierec/internal/services"
)

var (
	// Pipeline
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_pipeline_stage_duration_seconds",
			Help:    "Duration of recommendation pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"}, // "load", "normalize", "vectorize", "similarity", "recommend"
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_vocabulary_terms",
			Help: "Number of terms retained by the vectorizer in the last build",
		},
	)

	AbsorbedFields = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_absorbed_fields_total",
			Help: "Encoded fields that failed to parse and were treated as empty",
		},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "no_match", "error"
	)

	// Posters
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_poster_lookups_total",
			Help: "Poster lookups by result",
		},
		[]string{"result"}, // "cache_hit", "found", "missing", "no_credential", "error"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"error_kind"},
	)

	TMDBBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_tmdb_breaker_state",
			Help: "TMDB circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// API
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_api_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveStage records the duration of a pipeline stage.
func ObserveStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRecommendation counts one recommendation request.
func RecordRecommendation(results int, err error) {
	switch {
	case err != nil:
		Recommendations.WithLabelValues("error").Inc()
	case results == 0:
		Recommendations.WithLabelValues("no_match").Inc()
	default:
		Recommendations.WithLabelValues("ok").Inc()
	}
}

// RecordPosterLookup counts a poster lookup result.
func RecordPosterLookup(result string) {
	PosterLookups.WithLabelValues(result).Inc()
}

// RecordTMDBRequest records the latency of one TMDB call.
func RecordTMDBRequest(duration time.Duration, err error) {
	TMDBRequestDuration.WithLabelValues(services.Kind(err)).Observe(duration.Seconds())
}

// RecordAPIRequest records the latency of one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
