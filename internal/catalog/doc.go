// Package catalog reads the three movie metadata tables, joins them on the
// shared movie identifier and bounds the result to the most voted titles.
//
// Load is the only entry point that touches the filesystem. It either returns
// the full bounded catalog or an error wrapping services.ErrLoad; callers must
// treat that error as "no recommendations possible" rather than retrying.
package catalog
