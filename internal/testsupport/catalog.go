package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Movie is a compact catalog row. Genre, Keyword, Actor and Director each
// become a one-element list in the encoded columns.
type Movie struct {
	ID          string
	Title       string
	Overview    string
	Genre       string
	Keyword     string
	Actor       string
	Director    string
	VoteAverage float64
	VoteCount   int
	ReleaseDate string
}

// SampleMovies returns a small catalog where The Matrix and Dark City share
// the most tokens and the rest overlap with nothing.
func SampleMovies() []Movie {
	return []Movie{
		{ID: "603", Title: "The Matrix", Overview: "a hacker discovers the world is a simulated reality", Genre: "Action", Keyword: "simulation", Actor: "Keanu Reeves", Director: "Lana Wachowski", VoteAverage: 7.9, VoteCount: 9000, ReleaseDate: "1999-03-30"},
		{ID: "194", Title: "Amelie", Overview: "a shy waitress in paris changes lives", Genre: "Romance", Keyword: "paris", Actor: "Audrey Tautou", Director: "Jean-Pierre Jeunet", VoteAverage: 7.8, VoteCount: 4000, ReleaseDate: "2001-04-25"},
		{ID: "949", Title: "Heat", Overview: "a detective hunts a crew of bank robbers", Genre: "Crime", Keyword: "heist", Actor: "Al Pacino", Director: "Michael Mann", VoteAverage: 7.7, VoteCount: 3000, ReleaseDate: "1995-12-15"},
		{ID: "2666", Title: "Dark City", Overview: "a man discovers his city is a simulated experiment", Genre: "Action", Keyword: "simulation", Actor: "Rufus Sewell", Director: "Alex Proyas", VoteAverage: 7.3, VoteCount: 800, ReleaseDate: "1998-02-27"},
	}
}

// WriteCatalog writes movies_metadata.csv, credits.csv and keywords.csv
// under dir. Titles and overviews must not contain commas or quotes.
func WriteCatalog(t testing.TB, dir string, movies ...Movie) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dir, err)
	}
	var metadata, credits, keywords strings.Builder
	metadata.WriteString("id,title,overview,genres,vote_average,release_date,vote_count\n")
	credits.WriteString("cast,crew,id\n")
	keywords.WriteString("id,keywords\n")
	for _, m := range movies {
		fmt.Fprintf(&metadata, "%s,%s,%s,\"[{'id': 1, 'name': '%s'}]\",%.1f,%s,%d\n",
			m.ID, m.Title, m.Overview, m.Genre, m.VoteAverage, m.ReleaseDate, m.VoteCount)
		fmt.Fprintf(&credits, "\"[{'name': '%s'}]\",\"[{'job': 'Director', 'name': '%s'}]\",%s\n",
			m.Actor, m.Director, m.ID)
		fmt.Fprintf(&keywords, "%s,\"[{'name': '%s'}]\"\n", m.ID, m.Keyword)
	}
	files := map[string]string{
		"movies_metadata.csv": metadata.String(),
		"credits.csv":         credits.String(),
		"keywords.csv":        keywords.String(),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
