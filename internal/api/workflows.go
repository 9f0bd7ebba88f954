package api

import (
	"context"
	"strconv"
	"strings"

	"movierec/internal/poster"
	"movierec/internal/recommend"
	"movierec/internal/services"
)

// PosterLookup resolves poster URLs.
type PosterLookup interface {
	Lookup(ctx context.Context, title, apiKey string, cache poster.Cache) (string, bool)
}

// AttachPosters fills PosterURL for each recommendation. Lookups run one at a
// time so rate limiting stays predictable.
func AttachPosters(ctx context.Context, recs []Recommendation, lookup PosterLookup, apiKey string, cache poster.Cache) {
	if lookup == nil || strings.TrimSpace(apiKey) == "" {
		return
	}
	for i := range recs {
		if url, ok := lookup.Lookup(ctx, recs[i].Title, apiKey, cache); ok {
			recs[i].PosterURL = url
		}
	}
}

// ParseCount validates a requested recommendation count. Empty input yields
// the default.
func ParseCount(raw string, bounds CountBounds) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return bounds.Default, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "recommend", "parse count", "k must be an integer", err)
	}
	if k < bounds.Min || k > bounds.Max {
		return 0, services.Wrap(services.ErrValidation, "recommend", "parse count",
			"k must be between "+strconv.Itoa(bounds.Min)+" and "+strconv.Itoa(bounds.Max), nil)
	}
	return k, nil
}

// CountBounds limits recommendation counts.
type CountBounds struct {
	Default int
	Min     int
	Max     int
}

// DefaultCountBounds matches the recommend package defaults.
func DefaultCountBounds() CountBounds {
	return CountBounds{Default: recommend.DefaultCount, Min: recommend.MinCount, Max: recommend.MaxCount}
}

// FilterTitles returns titles containing search, case-insensitively.
func FilterTitles(titles []string, search string) []string {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return titles
	}
	out := make([]string, 0)
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), search) {
			out = append(out, title)
		}
	}
	return out
}
