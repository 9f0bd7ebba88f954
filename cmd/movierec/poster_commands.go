package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/pipeline"
)

func newPosterCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "poster <title>",
		Short: "Resolve the TMDB poster URL for a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title is required")
			}
			out := cmd.OutOrStdout()
			lookup, apiKey := ctx.posterLookup()
			if lookup == nil && !asJSON {
				fmt.Fprintln(out, "Poster lookups are disabled: set tmdb.api_key or export TMDB_API_KEY")
				return nil
			}

			resp := api.PosterResponse{Title: title}
			if lookup != nil {
				cache := api.OpenPosterCache(ctx.configValue(), ctx.loggerValue())
				defer cache.Close()
				resp.URL, resp.Found = lookup.Lookup(pipeline.WithRequest(cmd.Context(), title), title, apiKey, cache)
			}
			if asJSON {
				return writeJSON(cmd, resp)
			}
			if !resp.Found {
				fmt.Fprintf(out, "No poster found for %q\n", title)
				return nil
			}
			fmt.Fprintln(out, resp.URL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newPostersCommand(ctx *commandContext) *cobra.Command {
	postersCmd := &cobra.Command{
		Use:   "posters",
		Short: "Inspect and manage the persistent poster cache",
	}

	postersCmd.AddCommand(newPostersStatsCommand(ctx))
	postersCmd.AddCommand(newPostersClearCommand(ctx))

	return postersCmd
}

func newPostersStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show poster cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := api.OpenPosterStore(ctx.configValue(), ctx.loggerValue())
			if errors.Is(err, api.ErrPosterCacheDisabled) {
				fmt.Fprintln(out, "Poster cache is disabled (posters are cached for one session only)")
				return nil
			}
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Path:    %s\n", store.Path())
			fmt.Fprintf(out, "Entries: %s\n", humanize.Comma(stats.Entries))
			fmt.Fprintf(out, "Misses:  %s\n", humanize.Comma(stats.Misses))
			if info, err := os.Stat(store.Path()); err == nil {
				fmt.Fprintf(out, "Size:    %s\n", humanize.IBytes(uint64(info.Size())))
			}
			return nil
		},
	}
}

func newPostersClearCommand(ctx *commandContext) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every cached poster lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := ctx.configValue()
			if cfg == nil || !cfg.PosterCache.Enabled {
				fmt.Fprintln(out, "Poster cache is disabled; nothing to clear")
				return nil
			}
			if reset {
				removed, err := removeDatabaseFiles(cfg.PosterCache.Path)
				if err != nil {
					return err
				}
				if removed == 0 {
					fmt.Fprintln(out, "No poster cache database found")
					return nil
				}
				fmt.Fprintf(out, "Removed poster cache database %s\n", cfg.PosterCache.Path)
				return nil
			}

			store, err := api.OpenPosterStore(cfg, ctx.loggerValue())
			if err != nil {
				return err
			}
			defer store.Close()
			cleared, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if cleared == 0 {
				fmt.Fprintln(out, "Poster cache already empty")
				return nil
			}
			fmt.Fprintf(out, "Cleared %s cached posters\n", humanize.Comma(cleared))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the database file instead of emptying it")
	return cmd
}

// removeDatabaseFiles deletes a SQLite database and its WAL side files.
func removeDatabaseFiles(path string) (int, error) {
	removed := 0
	for _, candidate := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(candidate)
		if err == nil {
			removed++
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", candidate, err)
		}
	}
	return removed, nil
}
