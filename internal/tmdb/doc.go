// Package tmdb provides the minimal TMDB API client used for poster and detail
// lookups.
//
// It exposes movie search and movie detail retrieval. Errors are classified
// with the services sentinels: transport failures and timeouts are retryable,
// non-200 responses are not. Options let tests supply custom HTTP clients.
package tmdb
