// Package main hosts the movierec CLI entrypoint and command graph.
//
// The Cobra command tree loads the catalog from the configured data directory,
// answers recommendation and title queries, prints catalog insights, resolves
// posters through TMDB, and can run the HTTP server in the foreground. Config
// resolution and logger setup live in commandContext so subcommands only deal
// with presentation.
//
// Keep this package thin: new behavior belongs in the internal packages first
// and is surfaced here through a command or flag.
package main
