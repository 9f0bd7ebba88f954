package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"movierec/internal/catalog"
	"movierec/internal/config"
	"movierec/internal/features"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/recommend"
	"movierec/internal/services"
	"movierec/internal/similarity"
	"movierec/internal/vectorize"
)

// Options tunes index construction.
type Options struct {
	CastLimit   int
	MaxFeatures int
}

// OptionsFromConfig derives pipeline options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{CastLimit: cfg.Features.CastLimit, MaxFeatures: cfg.Features.MaxFeatures}
}

// Index bundles the derived artifacts of one pipeline run. Corpus rows,
// vector rows and similarity rows share indices.
type Index struct {
	Corpus     features.Corpus
	Vectors    *vectorize.Matrix
	Similarity *similarity.Matrix
}

// Recommend ranks the index against title.
func (ix *Index) Recommend(title string, k int) []recommend.Recommendation {
	if ix == nil {
		return []recommend.Recommendation{}
	}
	return recommend.Recommend(title, ix.Corpus, ix.Similarity, k)
}

// BuildIndex runs normalize, synthesize, vectorize and similarity over movies.
func BuildIndex(ctx context.Context, movies []catalog.Movie, opts Options, logger *slog.Logger) (*Index, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline"))

	var corpus features.Corpus
	var stats features.Stats
	if err := runStage(ctx, logger, "normalize", func() {
		corpus, stats = features.BuildCorpus(movies, features.Options{CastLimit: opts.CastLimit})
	}); err != nil {
		return nil, err
	}
	if stats.AbsorbedFields > 0 {
		metrics.AbsorbedFields.Add(float64(stats.AbsorbedFields))
		logger.Debug("malformed fields treated as empty",
			logging.String(logging.FieldEventType, "fields_absorbed"),
			logging.Int("fields", stats.AbsorbedFields),
			logging.Int("movies", stats.Movies))
	}

	var vectors *vectorize.Matrix
	if err := runStage(ctx, logger, "vectorize", func() {
		vectors = vectorize.CountVectorizer{MaxFeatures: opts.MaxFeatures}.FitTransform(corpus.Tags())
	}); err != nil {
		return nil, err
	}
	metrics.VocabularySize.Set(float64(vectors.Cols()))

	var sim *similarity.Matrix
	if err := runStage(ctx, logger, "similarity", func() {
		sim = similarity.Cosine(vectors)
	}); err != nil {
		return nil, err
	}

	logger.Info("index built",
		logging.String(logging.FieldEventType, "index_built"),
		logging.Int("movies", len(corpus)),
		logging.Int("terms", vectors.Cols()),
		logging.Int("non_zero", vectors.NonZero()),
		logging.String("matrix_size", humanize.IBytes(uint64(sim.Bytes()))))

	return &Index{Corpus: corpus, Vectors: vectors, Similarity: sim}, nil
}

// runStage checks for cancellation before a stage starts. Stages themselves
// run to completion.
func runStage(ctx context.Context, logger *slog.Logger, stage string, fn func()) error {
	if err := ctx.Err(); err != nil {
		return services.Wrap(services.ErrTimeout, stage, "start", "pipeline cancelled", err)
	}
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	metrics.ObserveStage(stage, elapsed)
	logger.Debug("stage complete",
		logging.String(logging.FieldStage, stage),
		logging.Duration("duration", elapsed))
	return nil
}

// Engine serves recommendations over a fixed catalog.
type Engine struct {
	movies []catalog.Movie
	opts   Options
	logger *slog.Logger
}

// NewEngine returns an engine over movies.
func NewEngine(movies []catalog.Movie, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	metrics.CatalogMovies.Set(float64(len(movies)))
	return &Engine{movies: movies, opts: opts, logger: logger}
}

// Movies returns the catalog the engine serves.
func (e *Engine) Movies() []catalog.Movie { return e.movies }

// Titles returns the distinct sorted catalog titles.
func (e *Engine) Titles() []string { return catalog.Titles(e.movies) }

// Index builds a fresh index for the catalog.
func (e *Engine) Index(ctx context.Context) (*Index, error) {
	return BuildIndex(ctx, e.movies, e.opts, e.logger)
}

// Recommend rebuilds the index and ranks it against title. An unknown title
// yields an empty result and a nil error.
func (e *Engine) Recommend(ctx context.Context, title string, k int) ([]recommend.Recommendation, error) {
	ctx = WithRequest(ctx, title)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.logger, "pipeline"))

	index, err := e.Index(ctx)
	if err != nil {
		metrics.RecordRecommendation(0, err)
		return nil, err
	}
	start := time.Now()
	results := index.Recommend(title, k)
	metrics.ObserveStage("recommend", time.Since(start))
	metrics.RecordRecommendation(len(results), nil)

	if len(results) == 0 {
		logger.Info("no recommendations",
			logging.String(logging.FieldEventType, "no_match"),
			logging.Int("k", k))
	} else {
		logger.Info("recommendations ready",
			logging.String(logging.FieldEventType, "recommendations_ready"),
			logging.Int("k", k),
			logging.Int("results", len(results)))
	}
	return results, nil
}

// WithRequest tags ctx with the query title and a correlation id unless one is
// already present.
func WithRequest(ctx context.Context, title string) context.Context {
	ctx = services.WithQuery(ctx, title)
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	return ctx
}
