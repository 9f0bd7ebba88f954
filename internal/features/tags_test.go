package features

import (
	"reflect"
	"testing"

	"movierec/internal/catalog"
)

func sampleMovie() catalog.Movie {
	return catalog.Movie{
		ID:       "862",
		Title:    "Toy Story",
		Overview: "Led by Woody, toys come alive.",
		Genres:   `[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]`,
		Keywords: `[{'id': 931, 'name': 'jealousy'}, {'id': 4290, 'name': 'toy comes to life'}]`,
		Cast:     `[{'name': 'Tom Hanks'}, {'name': 'Tim Allen'}, {'name': 'Don Rickles'}, {'name': 'Jim Varney'}]`,
		Crew:     `[{'job': 'Director', 'name': 'John Lasseter'}, {'job': 'Screenplay', 'name': 'Joss Whedon'}]`,
	}
}

func TestNormalizeTruncatesCastAndKeepsDirectors(t *testing.T) {
	n := Normalize(sampleMovie(), 3)
	if !reflect.DeepEqual(n.Cast, []string{"TomHanks", "TimAllen", "DonRickles"}) {
		t.Fatalf("unexpected cast %#v", n.Cast)
	}
	if !reflect.DeepEqual(n.Crew, []string{"JohnLasseter"}) {
		t.Fatalf("unexpected crew %#v", n.Crew)
	}
	if !reflect.DeepEqual(n.Keywords, []string{"jealousy", "toycomestolife"}) {
		t.Fatalf("unexpected keywords %#v", n.Keywords)
	}
}

func TestSynthesizeOrder(t *testing.T) {
	tagged := Synthesize(Normalize(sampleMovie(), 3))
	want := "Led by Woody, toys come alive. Animation Comedy jealousy toycomestolife TomHanks TimAllen DonRickles JohnLasseter"
	if tagged.Tag != want {
		t.Fatalf("Tag = %q\nwant %q", tagged.Tag, want)
	}
}

func TestSynthesizeKeepsRepeatedTokens(t *testing.T) {
	tagged := Synthesize(NormalizedMovie{OverviewTokens: []string{"war"}, Genres: []string{"war"}})
	if tagged.Tag != "war war" {
		t.Fatalf("expected repeated tokens, got %q", tagged.Tag)
	}
}

func TestBuildCorpusCountsAbsorbedFields(t *testing.T) {
	bad := sampleMovie()
	bad.Title = "Broken"
	bad.Genres = "[{'name': 'Drama'"
	corpus, stats := BuildCorpus([]catalog.Movie{sampleMovie(), bad}, Options{})
	if len(corpus) != 2 || stats.Movies != 2 {
		t.Fatalf("unexpected corpus size %d", len(corpus))
	}
	if stats.AbsorbedFields != 1 {
		t.Fatalf("expected 1 absorbed field, got %d", stats.AbsorbedFields)
	}
	if len(corpus[1].Genres) != 0 {
		t.Fatalf("expected empty genres for malformed field, got %#v", corpus[1].Genres)
	}
	if idx, ok := corpus.IndexOf("Broken"); !ok || idx != 1 {
		t.Fatalf("IndexOf = %d, %v", idx, ok)
	}
	if _, ok := corpus.IndexOf("broken"); ok {
		t.Fatalf("expected exact title match only")
	}
}
