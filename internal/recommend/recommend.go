// Package recommend ranks corpus entries against a query title using a
// precomputed similarity matrix.
package recommend

import (
	"sort"

	"movierec/internal/features"
	"movierec/internal/similarity"
)

// Recommendation is the read-only projection shown to users.
type Recommendation struct {
	Title           string
	Overview        string
	VoteAverage     float64
	ReleaseDate     string
	Genres          []string
	SimilarityScore float64
}

// Default request bounds.
const (
	DefaultCount = 5
	MinCount     = 3
	MaxCount     = 10
)

// Recommend returns up to k movies most similar to title, highest score first.
// The title must match a corpus entry exactly; otherwise the result is empty.
// Titles are emitted at most once and the query title never appears.
func Recommend(title string, corpus features.Corpus, sim *similarity.Matrix, k int) []Recommendation {
	if k <= 0 || sim == nil || sim.Size() != len(corpus) {
		return []Recommendation{}
	}
	query, ok := corpus.IndexOf(title)
	if !ok {
		return []Recommendation{}
	}

	scores := sim.Row(query)
	order := make([]int, 0, len(corpus)-1)
	for i := range corpus {
		if i != query {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	seen := map[string]struct{}{title: {}}
	out := make([]Recommendation, 0, k)
	for _, idx := range order {
		candidate := corpus[idx]
		name := candidate.Movie.Title
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, project(candidate, scores[idx]))
		if len(out) == k {
			break
		}
	}
	return out
}

func project(m features.TaggedMovie, score float64) Recommendation {
	return Recommendation{
		Title:           m.Movie.Title,
		Overview:        m.Movie.Overview,
		VoteAverage:     m.Movie.VoteAverage,
		ReleaseDate:     m.Movie.ReleaseDate,
		Genres:          features.Convert(m.Movie.Genres),
		SimilarityScore: score,
	}
}

// ClampCount bounds k to [min, max]. Zero or negative k falls back to
// DefaultCount before clamping.
func ClampCount(k, min, max int) int {
	if k <= 0 {
		k = DefaultCount
	}
	if k < min {
		return min
	}
	if k > max {
		return max
	}
	return k
}
