package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Movie is a merged catalog record. Genres, Keywords, Cast and Crew keep their
// encoded list-of-objects form; the features package parses them.
type Movie struct {
	ID          string
	Title       string
	Overview    string
	Genres      string
	Keywords    string
	Cast        string
	Crew        string
	VoteAverage float64
	VoteCount   int64
	ReleaseDate string
}

// ReleaseYear returns the four digit year of the release date, or 0 when the
// date is missing.
func (m Movie) ReleaseYear() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// CanonicalID coerces identifiers from any source to one comparable string
// form. Integral float renderings such as "862.0" collapse to "862".
func CanonicalID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return id
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return id
}

// Titles returns the distinct titles of movies sorted alphabetically.
func Titles(movies []Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	titles := make([]string, 0, len(movies))
	for _, movie := range movies {
		if _, ok := seen[movie.Title]; ok {
			continue
		}
		seen[movie.Title] = struct{}{}
		titles = append(titles, movie.Title)
	}
	sort.Strings(titles)
	return titles
}
