package api

import (
	"math"

	"movierec/internal/insights"
	"movierec/internal/recommend"
)

// Recommendation describes one recommended movie in a transport-friendly format.
type Recommendation struct {
	Rank            int      `json:"rank"`
	Title           string   `json:"title"`
	Overview        string   `json:"overview"`
	VoteAverage     float64  `json:"voteAverage"`
	ReleaseDate     string   `json:"releaseDate"`
	Genres          []string `json:"genres"`
	SimilarityScore float64  `json:"similarityScore"`
	PosterURL       string   `json:"posterUrl,omitempty"`
}

// RecommendationsResponse is the payload for a recommendation query.
type RecommendationsResponse struct {
	Query           string           `json:"query"`
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TitlesResponse lists selectable titles.
type TitlesResponse struct {
	Total  int      `json:"total"`
	Titles []string `json:"titles"`
}

// PosterResponse reports a poster lookup.
type PosterResponse struct {
	Title string `json:"title"`
	Found bool   `json:"found"`
	URL   string `json:"url,omitempty"`
}

// InsightsResponse wraps the catalog summary.
type InsightsResponse struct {
	insights.Summary
}

// HealthResponse reports server readiness.
type HealthResponse struct {
	Status      string `json:"status"`
	Movies      int    `json:"movies"`
	IndexReady  bool   `json:"indexReady"`
	PostersOn   bool   `json:"postersEnabled"`
	PosterCache string `json:"posterCache"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromRecommendation converts a recommendation to its API representation.
// Rank is 1-based.
func FromRecommendation(rank int, rec recommend.Recommendation) Recommendation {
	genres := rec.Genres
	if genres == nil {
		genres = []string{}
	}
	return Recommendation{
		Rank:            rank,
		Title:           rec.Title,
		Overview:        rec.Overview,
		VoteAverage:     rec.VoteAverage,
		ReleaseDate:     rec.ReleaseDate,
		Genres:          genres,
		SimilarityScore: math.Round(rec.SimilarityScore*1e6) / 1e6,
	}
}

// FromRecommendations converts a ranked slice.
func FromRecommendations(recs []recommend.Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	for i, rec := range recs {
		out = append(out, FromRecommendation(i+1, rec))
	}
	return out
}
