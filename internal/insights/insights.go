// Package insights aggregates read-only views over the loaded catalog: genre
// frequency, rating distribution and releases per year.
package insights

import (
	"sort"

	"movierec/internal/catalog"
	"movierec/internal/features"
)

// Defaults used when Options fields are zero.
const (
	DefaultTopGenres  = 10
	DefaultRatingBins = 20
)

// Options tunes Summarize.
type Options struct {
	TopGenres  int
	RatingBins int
}

// GenreCount is one genre frequency row.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// RatingBin covers vote averages in [Lower, Upper). The last bin includes Upper.
type RatingBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// YearCount is the number of releases in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Summary holds every aggregate view.
type Summary struct {
	Movies         int          `json:"movies"`
	TopGenres      []GenreCount `json:"topGenres"`
	Ratings        []RatingBin  `json:"ratings"`
	ReleasesByYear []YearCount  `json:"releasesByYear"`
}

// Summarize computes all views over movies.
func Summarize(movies []catalog.Movie, opts Options) Summary {
	if opts.TopGenres <= 0 {
		opts.TopGenres = DefaultTopGenres
	}
	if opts.RatingBins <= 0 {
		opts.RatingBins = DefaultRatingBins
	}
	return Summary{
		Movies:         len(movies),
		TopGenres:      TopGenres(movies, opts.TopGenres),
		Ratings:        RatingHistogram(movies, opts.RatingBins),
		ReleasesByYear: ReleasesByYear(movies),
	}
}

// TopGenres returns the n most frequent genres, ties ordered by name.
func TopGenres(movies []catalog.Movie, n int) []GenreCount {
	counts := make(map[string]int)
	for _, movie := range movies {
		for _, genre := range features.Convert(movie.Genres) {
			counts[genre]++
		}
	}
	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RatingHistogram splits the observed vote average range into bins of equal
// width.
func RatingHistogram(movies []catalog.Movie, bins int) []RatingBin {
	if len(movies) == 0 || bins <= 0 {
		return []RatingBin{}
	}
	lo, hi := movies[0].VoteAverage, movies[0].VoteAverage
	for _, m := range movies[1:] {
		lo = min(lo, m.VoteAverage)
		hi = max(hi, m.VoteAverage)
	}
	if hi == lo {
		return []RatingBin{{Lower: lo, Upper: hi, Count: len(movies)}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]RatingBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, m := range movies {
		idx := int((m.VoteAverage - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// ReleasesByYear counts releases per year in ascending year order. Movies
// without a parsable year are skipped.
func ReleasesByYear(movies []catalog.Movie) []YearCount {
	counts := make(map[int]int)
	for _, m := range movies {
		if year := m.ReleaseYear(); year > 0 {
			counts[year]++
		}
	}
	out := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		out = append(out, YearCount{Year: year, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
