package catalog_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movierec/internal/catalog"
	"movierec/internal/services"
)

type fixture struct {
	movies   strings.Builder
	credits  strings.Builder
	keywords strings.Builder
}

func newFixture() *fixture {
	f := &fixture{}
	f.movies.WriteString("adult,id,title,overview,genres,vote_average,release_date,vote_count\n")
	f.credits.WriteString("cast,crew,id\n")
	f.keywords.WriteString("id,keywords\n")
	return f
}

func (f *fixture) add(id, title string, votes int) {
	fmt.Fprintf(&f.movies, "False,%s,%s,A story about %s,\"[{'id': 1, 'name': 'Drama'}]\",7.1,2001-02-03,%d\n", id, title, title, votes)
	fmt.Fprintf(&f.credits, "\"[{'name': 'Lead Actor'}]\",\"[{'job': 'Director', 'name': 'Some One'}]\",%s\n", id)
	fmt.Fprintf(&f.keywords, "%s,\"[{'name': 'heist'}]\"\n", id)
}

func (f *fixture) write(t *testing.T) catalog.Sources {
	t.Helper()
	dir := t.TempDir()
	src := catalog.Sources{
		Movies:   filepath.Join(dir, "movies_metadata.csv"),
		Credits:  filepath.Join(dir, "credits.csv"),
		Keywords: filepath.Join(dir, "keywords.csv"),
	}
	for path, body := range map[string]string{
		src.Movies:   f.movies.String(),
		src.Credits:  f.credits.String(),
		src.Keywords: f.keywords.String(),
	} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return src
}

func TestLoadBoundsToTopVoted(t *testing.T) {
	f := newFixture()
	for i := 1; i <= 6000; i++ {
		f.add(fmt.Sprintf("%d", i), fmt.Sprintf("Movie %d", i), (i*7919)%10007)
	}
	movies, err := catalog.Load(f.write(t), catalog.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(movies) != 5000 {
		t.Fatalf("expected 5000 movies, got %d", len(movies))
	}
	seen := make(map[string]struct{}, len(movies))
	for i, movie := range movies {
		if _, dup := seen[movie.ID]; dup {
			t.Fatalf("duplicate id %s", movie.ID)
		}
		seen[movie.ID] = struct{}{}
		if i > 0 && movies[i-1].VoteCount < movie.VoteCount {
			t.Fatalf("not sorted at %d: %d < %d", i, movies[i-1].VoteCount, movie.VoteCount)
		}
	}
}

func TestLoadKeepsAllWhenBelowLimit(t *testing.T) {
	f := newFixture()
	f.add("1", "Alpha", 10)
	f.add("2", "Beta", 30)
	f.add("3", "Gamma", 20)

	movies, err := catalog.Load(f.write(t), catalog.Options{MaxMovies: 5000})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := make([]string, len(movies))
	for i, m := range movies {
		got[i] = m.Title
	}
	if strings.Join(got, ",") != "Beta,Gamma,Alpha" {
		t.Fatalf("unexpected order: %v", got)
	}
	if movies[0].VoteAverage != 7.1 || movies[0].ReleaseDate != "2001-02-03" {
		t.Fatalf("unexpected fields: %+v", movies[0])
	}
}

func TestLoadJoinsCanonicalIDs(t *testing.T) {
	f := newFixture()
	f.add("862", "Toy Story", 100)
	// Credits written with a float id must still join.
	f.credits.Reset()
	f.credits.WriteString("cast,crew,id\n")
	f.credits.WriteString("\"[{'name': 'Tom Hanks'}]\",\"[{'job': 'Director', 'name': 'John Lasseter'}]\",862.0\n")

	movies, err := catalog.Load(f.write(t), catalog.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "862" {
		t.Fatalf("expected joined movie 862, got %+v", movies)
	}
	if !strings.Contains(movies[0].Cast, "Tom Hanks") {
		t.Fatalf("expected cast from credits, got %q", movies[0].Cast)
	}
}

func TestLoadDropsIncompleteRecords(t *testing.T) {
	f := newFixture()
	f.add("1", "Complete", 5)
	f.movies.WriteString("False,2,,No title,\"[{'name': 'Drama'}]\",6.0,2000-01-01,9\n")
	f.movies.WriteString("False,3,Bad Vote,Overview,\"[{'name': 'Drama'}]\",abc,2000-01-01,9\n")
	f.movies.WriteString("False,4,Bad Date,Overview,\"[{'name': 'Drama'}]\",6.0,1/1/2000,9\n")
	f.movies.WriteString("False,5,No Credits,Overview,\"[{'name': 'Drama'}]\",6.0,2000-01-01,9\n")
	for _, id := range []string{"2", "3", "4"} {
		fmt.Fprintf(&f.credits, "\"[{'name': 'A'}]\",\"[{'job': 'Director', 'name': 'B'}]\",%s\n", id)
	}
	for _, id := range []string{"2", "3", "4", "5"} {
		fmt.Fprintf(&f.keywords, "%s,\"[{'name': 'k'}]\"\n", id)
	}

	movies, err := catalog.Load(f.write(t), catalog.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Complete" {
		t.Fatalf("expected only the complete record, got %+v", movies)
	}
}

func TestLoadKeepsFirstDuplicateID(t *testing.T) {
	f := newFixture()
	f.add("7", "First", 5)
	f.add("7", "Second", 50)

	movies, err := catalog.Load(f.write(t), catalog.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "First" {
		t.Fatalf("expected first occurrence, got %+v", movies)
	}
}

func TestLoadFailures(t *testing.T) {
	f := newFixture()
	f.add("1", "Alpha", 1)
	src := f.write(t)

	missing := src
	missing.Credits = filepath.Join(t.TempDir(), "absent.csv")
	if _, err := catalog.Load(missing, catalog.Options{}); !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad for missing file, got %v", err)
	}

	badHeader := src
	badHeader.Keywords = filepath.Join(t.TempDir(), "keywords.csv")
	if err := os.WriteFile(badHeader.Keywords, []byte("movie,tags\n1,x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := catalog.Load(badHeader, catalog.Options{})
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad for missing column, got %v", err)
	}
	if !strings.Contains(err.Error(), `keywords: missing column "id"`) {
		t.Fatalf("expected error to name the table and column, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatalf("expected load error to be fatal")
	}
}
