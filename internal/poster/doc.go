// Package poster resolves movie poster URLs through TMDB for display next to
// recommendations.
//
// Lookups never fail loudly: every problem ends in "no poster". Results,
// including misses, are stored in a caller-owned Cache so a session asks TMDB
// about each title at most once. A blank credential short-circuits before any
// network call. Transport failures are retried a bounded number of times and
// feed a circuit breaker so an unreachable API stops costing a full retry
// cycle per poster.
package poster
