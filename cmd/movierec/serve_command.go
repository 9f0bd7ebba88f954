package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movierec/internal/serverrun"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	var logLevel string
	var development bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return serverrun.Run(cmd.Context(), cfg, serverrun.Options{
				LogLevel:    logLevel,
				Bind:        bind,
				Development: development,
				Ready: func(addr string) {
					fmt.Fprintf(out, "Serving on http://%s (Ctrl+C to stop)\n", addr)
				},
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&development, "dev", false, "Include source locations in logs")
	return cmd
}
