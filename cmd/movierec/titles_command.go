package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"movierec/internal/api"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List selectable catalog titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.catalogEngine(cmd.Context())
			if err != nil {
				return err
			}
			titles := api.FilterTitles(engine.Titles(), search)

			if asJSON {
				if titles == nil {
					titles = []string{}
				}
				return writeJSON(cmd, api.TitlesResponse{Total: len(titles), Titles: titles})
			}

			out := cmd.OutOrStdout()
			if len(titles) == 0 {
				fmt.Fprintln(out, "No matching titles")
				return nil
			}
			for _, title := range titles {
				fmt.Fprintln(out, title)
			}
			fmt.Fprintf(out, "\n%s titles\n", humanize.Comma(int64(len(titles))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only list titles containing this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
