package insights

import (
	"testing"

	"movierec/internal/catalog"
)

func sample() []catalog.Movie {
	return []catalog.Movie{
		{Title: "A", Genres: "[{'name': 'Drama'}, {'name': 'Crime'}]", VoteAverage: 2, ReleaseDate: "1995-01-01"},
		{Title: "B", Genres: "[{'name': 'Drama'}]", VoteAverage: 6, ReleaseDate: "1995-06-01"},
		{Title: "C", Genres: "[{'name': 'Comedy'}]", VoteAverage: 10, ReleaseDate: "2001-01-01"},
		{Title: "D", Genres: "not parsable", VoteAverage: 4, ReleaseDate: ""},
	}
}

func TestTopGenres(t *testing.T) {
	got := TopGenres(sample(), 2)
	if len(got) != 2 || got[0] != (GenreCount{"Drama", 2}) || got[1] != (GenreCount{"Comedy", 1}) {
		t.Fatalf("unexpected genres %+v", got)
	}
}

func TestRatingHistogram(t *testing.T) {
	got := RatingHistogram(sample(), 4)
	if len(got) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(got))
	}
	total := 0
	for _, bin := range got {
		total += bin.Count
	}
	if total != 4 {
		t.Fatalf("expected every movie in a bin, got %d", total)
	}
	if got[0].Lower != 2 || got[3].Upper != 10 || got[3].Count != 1 {
		t.Fatalf("unexpected bins %+v", got)
	}
	if single := RatingHistogram(sample()[:1], 20); len(single) != 1 || single[0].Count != 1 {
		t.Fatalf("expected single bin for constant ratings, got %+v", single)
	}
	if empty := RatingHistogram(nil, 20); len(empty) != 0 {
		t.Fatalf("expected no bins")
	}
}

func TestReleasesByYear(t *testing.T) {
	got := ReleasesByYear(sample())
	if len(got) != 2 || got[0] != (YearCount{1995, 2}) || got[1] != (YearCount{2001, 1}) {
		t.Fatalf("unexpected years %+v", got)
	}
}

func TestSummarizeDefaults(t *testing.T) {
	s := Summarize(sample(), Options{})
	if s.Movies != 4 || len(s.Ratings) != DefaultRatingBins || len(s.TopGenres) != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
