package features

import (
	"strings"

	"movierec/internal/catalog"
)

// DefaultCastLimit keeps only top-billed actors.
const DefaultCastLimit = 3

// NormalizedMovie holds the token lists derived from one catalog record.
type NormalizedMovie struct {
	Movie          catalog.Movie
	OverviewTokens []string
	Genres         []string
	Keywords       []string
	Cast           []string
	Crew           []string
}

// TaggedMovie is a normalized movie plus its synthesized tag text.
type TaggedMovie struct {
	NormalizedMovie
	Tag string
}

// Corpus is index aligned with vectorizer rows and similarity rows.
type Corpus []TaggedMovie

// Options controls normalization.
type Options struct {
	CastLimit int
}

// Stats counts encoded fields that were present but degraded to empty lists.
type Stats struct {
	Movies         int
	AbsorbedFields int
}

// Normalize parses and collapses all list fields of movie. Cast is truncated to
// castLimit entries before collapsing.
func Normalize(movie catalog.Movie, castLimit int) NormalizedMovie {
	if castLimit <= 0 {
		castLimit = DefaultCastLimit
	}
	cast := Convert(movie.Cast)
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	return NormalizedMovie{
		Movie:          movie,
		OverviewTokens: TokenizeOverview(movie.Overview),
		Genres:         Collapse(Convert(movie.Genres)),
		Keywords:       Collapse(Convert(movie.Keywords)),
		Cast:           Collapse(cast),
		Crew:           Collapse(FetchDirector(movie.Crew)),
	}
}

// Synthesize joins overview, genre, keyword, cast and crew tokens in that order.
func Synthesize(n NormalizedMovie) TaggedMovie {
	size := len(n.OverviewTokens) + len(n.Genres) + len(n.Keywords) + len(n.Cast) + len(n.Crew)
	tokens := make([]string, 0, size)
	tokens = append(tokens, n.OverviewTokens...)
	tokens = append(tokens, n.Genres...)
	tokens = append(tokens, n.Keywords...)
	tokens = append(tokens, n.Cast...)
	tokens = append(tokens, n.Crew...)
	return TaggedMovie{NormalizedMovie: n, Tag: strings.Join(tokens, " ")}
}

// BuildCorpus normalizes and tags movies, preserving their order.
func BuildCorpus(movies []catalog.Movie, opts Options) (Corpus, Stats) {
	corpus := make(Corpus, len(movies))
	stats := Stats{Movies: len(movies)}
	for i, movie := range movies {
		n := Normalize(movie, opts.CastLimit)
		stats.AbsorbedFields += absorbed(movie.Genres, n.Genres) +
			absorbed(movie.Keywords, n.Keywords) +
			absorbed(movie.Cast, n.Cast)
		corpus[i] = Synthesize(n)
	}
	return corpus, stats
}

// Titles returns corpus titles in corpus order.
func (c Corpus) Titles() []string {
	titles := make([]string, len(c))
	for i, m := range c {
		titles[i] = m.Movie.Title
	}
	return titles
}

// Tags returns corpus tags in corpus order.
func (c Corpus) Tags() []string {
	tags := make([]string, len(c))
	for i, m := range c {
		tags[i] = m.Tag
	}
	return tags
}

// IndexOf returns the first index whose title equals title exactly.
func (c Corpus) IndexOf(title string) (int, bool) {
	for i, m := range c {
		if m.Movie.Title == title {
			return i, true
		}
	}
	return -1, false
}

func absorbed(encoded string, parsed []string) int {
	trimmed := strings.TrimSpace(encoded)
	if trimmed != "" && trimmed != "[]" && len(parsed) == 0 {
		return 1
	}
	return 0
}
