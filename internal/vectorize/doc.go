// Package vectorize builds bag-of-words count vectors over the tag corpus.
//
// Analysis lowercases text, keeps runs of two or more word characters and drops
// English stop words. The vocabulary is capped to the most frequent terms and
// columns are ordered alphabetically, so the same corpus always yields the
// same matrix.
package vectorize
