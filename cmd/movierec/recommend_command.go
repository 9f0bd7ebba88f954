package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/pipeline"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var count int
	var noPosters bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to a catalog title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title is required")
			}
			rawCount := ""
			if cmd.Flags().Changed("count") {
				rawCount = strconv.Itoa(count)
			}
			k, err := api.ParseCount(rawCount, ctx.countBounds())
			if err != nil {
				return err
			}

			engine, err := ctx.catalogEngine(cmd.Context())
			if err != nil {
				return err
			}
			reqCtx := pipeline.WithRequest(cmd.Context(), title)
			recs, err := engine.Recommend(reqCtx, title, k)
			if err != nil {
				return err
			}
			results := api.FromRecommendations(recs)

			if !noPosters && len(results) > 0 {
				if lookup, apiKey := ctx.posterLookup(); lookup != nil {
					cache := api.OpenPosterCache(ctx.configValue(), ctx.loggerValue())
					defer cache.Close()
					api.AttachPosters(reqCtx, results, lookup, apiKey, cache)
				}
			}

			if asJSON {
				return writeJSON(cmd, api.RecommendationsResponse{
					Query:           title,
					Count:           len(results),
					Recommendations: results,
				})
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No recommendations found for %q\n", title)
				fmt.Fprintln(out, "Use `movierec titles --search` to find the exact catalog title.")
				return nil
			}
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Recommendations for "+title, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderRecommendations(results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "k", 0, "Number of recommendations (default from config)")
	cmd.Flags().BoolVar(&noPosters, "no-posters", false, "Skip TMDB poster lookups")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderRecommendations(recs []api.Recommendation) string {
	withPosters := false
	for _, rec := range recs {
		if rec.PosterURL != "" {
			withPosters = true
			break
		}
	}
	headers := []string{"#", "Title", "Year", "Rating", "Genres", "Score"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight}
	if withPosters {
		headers = append(headers, "Poster")
		aligns = append(aligns, alignLeft)
	}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		row := []string{
			strconv.Itoa(rec.Rank),
			rec.Title,
			releaseYear(rec.ReleaseDate),
			strconv.FormatFloat(rec.VoteAverage, 'f', 1, 64),
			strings.Join(rec.Genres, ", "),
			strconv.FormatFloat(rec.SimilarityScore, 'f', 3, 64),
		}
		if withPosters {
			row = append(row, rec.PosterURL)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return date
	}
	return date[:4]
}
