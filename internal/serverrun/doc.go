// Package serverrun hosts the movierecd process runtime: logger setup, the
// single-instance lock, catalog loading and the HTTP server lifecycle.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// shuts the HTTP server down gracefully. A catalog load failure aborts startup.
package serverrun
