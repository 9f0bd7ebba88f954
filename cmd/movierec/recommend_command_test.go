package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"movierec/internal/api"
	"movierec/internal/config"
	"movierec/internal/services"
	"movierec/internal/testsupport"
)

func TestRecommendTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"recommend", "The Matrix", "-k", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	requireContains(t, out, "Recommendations for The Matrix")
	requireContains(t, out, "Dark City")
	requireContains(t, out, "1998")
	requireNotContains(t, out, "Poster")
	if strings.Index(out, "Dark City") > strings.Index(out, "Amelie") {
		t.Fatalf("expected Dark City ranked before Amelie:\n%s", out)
	}
}

func TestRecommendJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"recommend", "The Matrix", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend --json: %v", err)
	}
	var resp api.RecommendationsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.Query != "The Matrix" || resp.Count != 3 || len(resp.Recommendations) != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
	first := resp.Recommendations[0]
	if first.Rank != 1 || first.Title != "Dark City" || len(first.Genres) != 1 || first.Genres[0] != "Action" {
		t.Fatalf("unexpected first recommendation %+v", first)
	}
	for _, rec := range resp.Recommendations {
		if rec.Title == "The Matrix" {
			t.Fatalf("query title must not be recommended: %+v", resp.Recommendations)
		}
	}
}

func TestRecommendUnknownTitleIsNotAnError(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"recommend", "Not In Catalog"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend unknown: %v", err)
	}
	requireContains(t, out, "No recommendations found")
}

func TestRecommendRejectsCountOutOfRange(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, k := range []string{"2", "11"} {
		_, _, err := runCLI(t, []string{"recommend", "The Matrix", "-k", k}, env.configPath)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("k=%s: expected validation error, got %v", k, err)
		}
	}
}

func TestRecommendMissingCatalogFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(env.dataDir, "credits.csv")); err != nil {
		t.Fatalf("remove credits: %v", err)
	}

	_, _, err := runCLI(t, []string{"recommend", "The Matrix"}, env.configPath)
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRecommendAttachesPosters(t *testing.T) {
	tmdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title := r.URL.Query().Get("query")
		slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"` + title + `","poster_path":"/` + slug + `.jpg"}]}`))
	}))
	defer tmdb.Close()

	env := setupCLITestEnv(t, testsupport.WithTMDB(tmdb.URL, "test-key"), withImageBase("https://img.example/w500"))

	out, _, err := runCLI(t, []string{"recommend", "The Matrix", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var resp api.RecommendationsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := resp.Recommendations[0].PosterURL; got != "https://img.example/w500/dark-city.jpg" {
		t.Fatalf("unexpected poster url %q", got)
	}

	out, _, err = runCLI(t, []string{"recommend", "The Matrix", "--json", "--no-posters"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend --no-posters: %v", err)
	}
	requireNotContains(t, out, "posterUrl")
}

func withImageBase(url string) testsupport.ConfigOption {
	return testsupport.WithConfig(func(cfg *config.Config) {
		cfg.TMDB.ImageBaseURL = url
	})
}
