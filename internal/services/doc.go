// Package services defines shared utilities consumed by the recommendation
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the query title, pipeline stage, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that separate fatal catalog
//     load failures from recoverable per-query and per-lookup failures.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
