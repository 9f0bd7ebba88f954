// Package config loads, normalizes, and validates movierec configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY and MOVIEREC_DATA_DIR. The Config type centralizes the catalog
// file locations, feature extraction limits, recommendation bounds, and the
// poster lookup credentials so the CLI and HTTP server resolve them in one pass.
//
// A missing TMDB key is not an error: poster lookups simply report no poster.
package config
