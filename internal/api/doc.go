// Package api defines wire-format types and the shared workflows used by both
// the CLI and the HTTP server.
//
// # Key Types
//
// Recommendation: transport representation of a recommendation with an
// optional poster URL.
//
// RecommendationsResponse, TitlesResponse, PosterResponse, ErrorResponse:
// payloads served by the HTTP handlers and printed by `--json` CLI output.
//
// # Converters
//
// FromRecommendation: recommend.Recommendation -> Recommendation.
//
// # Server
//
// Server mounts the chi router. It keeps one lazily built pipeline index for
// the lifetime of the process because the catalog never changes while it runs.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript consumers. A query with no
// matching title answers 404 with {"error":"no recommendations"}, distinct from
// 500 for failures.
package api
