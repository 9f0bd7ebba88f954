package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/insights"
)

const barWidth = 30

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var topGenres int
	var bins int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize genres, ratings, and release years of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.catalogEngine(cmd.Context())
			if err != nil {
				return err
			}
			summary := insights.Summarize(engine.Movies(), insights.Options{TopGenres: topGenres, RatingBins: bins})
			if asJSON {
				return writeJSON(cmd, api.InsightsResponse{Summary: summary})
			}
			printInsights(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&topGenres, "top", insights.DefaultTopGenres, "Number of genres to show")
	cmd.Flags().IntVar(&bins, "bins", insights.DefaultRatingBins, "Rating histogram bins")
	return cmd
}

func printInsights(out io.Writer, summary insights.Summary, colorize bool) {
	fmt.Fprintf(out, "Movies: %s\n\n", humanize.Comma(int64(summary.Movies)))

	for _, line := range renderSectionHeader("Top genres", colorize) {
		fmt.Fprintln(out, line)
	}
	genreMax := 0
	for _, g := range summary.TopGenres {
		genreMax = max(genreMax, g.Count)
	}
	genreRows := make([][]string, 0, len(summary.TopGenres))
	for _, g := range summary.TopGenres {
		genreRows = append(genreRows, []string{g.Genre, humanize.Comma(int64(g.Count)), bar(g.Count, genreMax)})
	}
	fmt.Fprintln(out, renderTable([]string{"Genre", "Movies", ""}, genreRows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Rating distribution", colorize) {
		fmt.Fprintln(out, line)
	}
	ratingMax := 0
	for _, b := range summary.Ratings {
		ratingMax = max(ratingMax, b.Count)
	}
	ratingRows := make([][]string, 0, len(summary.Ratings))
	for _, b := range summary.Ratings {
		label := strconv.FormatFloat(b.Lower, 'f', 2, 64) + " - " + strconv.FormatFloat(b.Upper, 'f', 2, 64)
		ratingRows = append(ratingRows, []string{label, humanize.Comma(int64(b.Count)), bar(b.Count, ratingMax)})
	}
	fmt.Fprintln(out, renderTable([]string{"Rating", "Movies", ""}, ratingRows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Releases by year", colorize) {
		fmt.Fprintln(out, line)
	}
	yearMax := 0
	for _, y := range summary.ReleasesByYear {
		yearMax = max(yearMax, y.Count)
	}
	yearRows := make([][]string, 0, len(summary.ReleasesByYear))
	for _, y := range summary.ReleasesByYear {
		yearRows = append(yearRows, []string{strconv.Itoa(y.Year), humanize.Comma(int64(y.Count)), bar(y.Count, yearMax)})
	}
	fmt.Fprintln(out, renderTable([]string{"Year", "Movies", ""}, yearRows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}

func bar(value, maxValue int) string {
	if value <= 0 || maxValue <= 0 {
		return ""
	}
	n := value * barWidth / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
