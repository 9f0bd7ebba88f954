package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"movierec/internal/services"
)

// DefaultMaxMovies bounds the catalog when Options.MaxMovies is unset.
const DefaultMaxMovies = 5000

// Sources names the three metadata tables.
type Sources struct {
	Movies   string
	Credits  string
	Keywords string
}

// Options tunes catalog loading.
type Options struct {
	MaxMovies int
}

type table struct {
	ids  []string
	rows map[string][]string
}

var (
	movieColumns   = []string{"id", "title", "overview", "genres", "vote_average", "release_date", "vote_count"}
	creditColumns  = []string{"id", "cast", "crew"}
	keywordColumns = []string{"id", "keywords"}
)

// Load reads, joins, filters and ranks the catalog.
func Load(src Sources, opts Options) ([]Movie, error) {
	movies, err := readTable("movies", src.Movies, movieColumns)
	if err != nil {
		return nil, err
	}
	credits, err := readTable("credits", src.Credits, creditColumns)
	if err != nil {
		return nil, err
	}
	keywords, err := readTable("keywords", src.Keywords, keywordColumns)
	if err != nil {
		return nil, err
	}
	return merge(movies, credits, keywords, opts), nil
}

// merge inner-joins the tables, drops incomplete records and keeps the top
// MaxMovies by vote count. Join order follows the movies table.
func merge(movies, credits, keywords *table, opts Options) []Movie {
	limit := opts.MaxMovies
	if limit <= 0 {
		limit = DefaultMaxMovies
	}

	merged := make([]Movie, 0, len(movies.rows))
	for _, id := range movies.ids {
		credit, ok := credits.rows[id]
		if !ok {
			continue
		}
		keyword, ok := keywords.rows[id]
		if !ok {
			continue
		}
		row := movies.rows[id]
		movie, ok := buildMovie(id, row, credit, keyword)
		if !ok {
			continue
		}
		merged = append(merged, movie)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].VoteCount > merged[j].VoteCount
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func buildMovie(id string, row, credit, keyword []string) (Movie, bool) {
	movie := Movie{
		ID:          id,
		Title:       strings.TrimSpace(row[1]),
		Overview:    strings.TrimSpace(row[2]),
		Genres:      strings.TrimSpace(row[3]),
		Cast:        strings.TrimSpace(credit[1]),
		Crew:        strings.TrimSpace(credit[2]),
		Keywords:    strings.TrimSpace(keyword[1]),
		ReleaseDate: strings.TrimSpace(row[5]),
	}
	for _, required := range []string{movie.Title, movie.Overview, movie.Genres, movie.Keywords, movie.Cast, movie.Crew} {
		if required == "" {
			return Movie{}, false
		}
	}

	vote, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return Movie{}, false
	}
	movie.VoteAverage = vote

	if _, err := time.Parse(time.DateOnly, movie.ReleaseDate); err != nil {
		return Movie{}, false
	}

	movie.VoteCount = parseCount(row[6])
	return movie, true
}

func parseCount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		return int64(f)
	}
	return 0
}

func readTable(name, path string, columns []string) (*table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrLoad, "catalog", "open "+name, "path not configured", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "catalog", "open "+name, path, err)
	}
	defer file.Close()

	tbl, err := parseTable(name, file, columns)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "catalog", "read "+name, path, err)
	}
	return tbl, nil
}

// parseTable projects the named columns out of a CSV stream. The first column
// must be the identifier. Repeated identifiers keep their first row.
func parseTable(name string, r io.Reader, columns []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header row", name)
		}
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	positions := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := index[col]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, col)
		}
		positions[i] = pos
	}

	tbl := &table{rows: make(map[string][]string)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		values := make([]string, len(columns))
		for i, pos := range positions {
			if pos < len(record) {
				values[i] = record[pos]
			}
		}
		id := CanonicalID(values[0])
		if id == "" {
			continue
		}
		if _, dup := tbl.rows[id]; dup {
			continue
		}
		tbl.rows[id] = values
		tbl.ids = append(tbl.ids, id)
	}
	return tbl, nil
}
