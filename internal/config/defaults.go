package config

const (
	defaultDataDir            = "~/.local/share/movierec/data"
	defaultLogDir             = "~/.local/share/movierec/logs"
	defaultMoviesFile         = "movies_metadata.csv"
	defaultCreditsFile        = "credits.csv"
	defaultKeywordsFile       = "keywords.csv"
	defaultMaxMovies          = 5000
	defaultCastLimit          = 3
	defaultMaxFeatures        = 5000
	defaultRecommendCount     = 5
	defaultRecommendMin       = 3
	defaultRecommendMax       = 10
	defaultTMDBLanguage       = "en-US"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultTMDBRequestTimeout = 15
	defaultTMDBMaxAttempts    = 3
	defaultTMDBRatePerSecond  = 20
	defaultPosterCacheFile    = "posters.db"
	defaultAPIBind            = "127.0.0.1:7488"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir(),
		},
		Catalog: Catalog{
			MoviesFile:   defaultMoviesFile,
			CreditsFile:  defaultCreditsFile,
			KeywordsFile: defaultKeywordsFile,
			MaxMovies:    defaultMaxMovies,
		},
		Features: Features{
			CastLimit:   defaultCastLimit,
			MaxFeatures: defaultMaxFeatures,
		},
		Recommend: Recommend{
			DefaultCount: defaultRecommendCount,
			MinCount:     defaultRecommendMin,
			MaxCount:     defaultRecommendMax,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			RequestTimeout:    defaultTMDBRequestTimeout,
			MaxAttempts:       defaultTMDBMaxAttempts,
			RequestsPerSecond: defaultTMDBRatePerSecond,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
